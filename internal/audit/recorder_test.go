package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRepo struct {
	entries []*Entry
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, entry *Entry) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeRepo) ListRecent(ctx context.Context, limit int) ([]Entry, error) {
	return nil, nil
}

func TestRecorder_Record(t *testing.T) {
	repo := &fakeRepo{}
	r := NewRecorder(repo)

	r.Record(context.Background(), Entry{Action: "clock_in", Success: true})

	assert.Len(t, repo.entries, 1)
	assert.Equal(t, "clock_in", repo.entries[0].Action)
}

func TestRecorder_SwallowsStoreFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	r := NewRecorder(repo)

	// Tidak boleh panic atau mengembalikan error ke caller.
	r.Record(context.Background(), Entry{Action: "clock_out", Success: false})
	assert.Empty(t, repo.entries)
}
