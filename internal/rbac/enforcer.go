package rbac

import (
	"github.com/casbin/casbin/v2"
)

// NewEnforcer memuat model dan policy dari file. Policy admin gateway ini
// kecil dan statis, jadi tidak perlu adapter database.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(false)
	return enforcer, nil
}
