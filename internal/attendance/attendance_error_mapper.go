package attendance

import (
	"errors"

	attendanceerrors "go-attendgate/internal/attendance/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// mapCreateError menerjemahkan unique violation pada partial index
// uq_attendance_open_day menjadi error domain. Index ini belt kedua di bawah
// row lock: dua insert konkuren untuk (karyawan, tanggal) yang sama tidak
// mungkin sama-sama lolos.
func mapCreateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		if pgErr.ConstraintName == "uq_attendance_open_day" {
			return attendanceerrors.ErrAlreadyClockedIn
		}
	}
	return err
}

func mustUUID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}
