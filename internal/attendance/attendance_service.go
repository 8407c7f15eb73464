package attendance

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	attendanceerrors "go-attendgate/internal/attendance/errors"
	"go-attendgate/internal/audit"
	"go-attendgate/internal/device"
	"go-attendgate/internal/employee"
	employeeerrors "go-attendgate/internal/employee/errors"
	"go-attendgate/internal/events"
	"go-attendgate/internal/geofence"
	"go-attendgate/internal/messaging/kafka"
	"go-attendgate/internal/shared/apperror"
	"go-attendgate/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenIssuer menerbitkan sesi setelah face verification berhasil.
// Diimplementasikan oleh auth service; nil berarti tanpa sesi.
type TokenIssuer interface {
	IssueToken(empl *employee.Employee) (string, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	ClockIn(ctx context.Context, req ClockInRequest) (*AttendanceResponse, error)
	VerifyAndClockIn(ctx context.Context, req VerifyClockInRequest) (*AttendanceResponse, error)
	ClockOut(ctx context.Context, req ClockOutRequest) (*ClockOutResponse, error)
	GetStatus(ctx context.Context, employeeID, date string) (*StatusResponse, error)
	GetHistory(ctx context.Context, employeeID string, limit int) ([]HistoryItem, error)
}

// service adalah engine gating: setiap clock in/out melewati urutan cek
// identitas → koordinat → geofence → device → state machine, dan setiap
// keputusan (terima maupun tolak) meninggalkan audit entry. Satu-satunya
// jalan keluar tanpa audit adalah store yang tidak bisa diajak bicara.
type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	devices   device.Policy
	fence     *geofence.Validator
	outbox    kafka.OutboxRepository
	audit     audit.Recorder
	tokens    TokenIssuer
	cfg       GatingConfig
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	devices device.Policy,
	outbox kafka.OutboxRepository,
	auditRecorder audit.Recorder,
	tokens TokenIssuer,
	cfg GatingConfig,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		devices:   devices,
		fence:     geofence.NewValidator(cfg.SiteLatitude, cfg.SiteLongitude, cfg.AllowedRadiusMeters),
		outbox:    outbox,
		audit:     auditRecorder,
		tokens:    tokens,
		cfg:       cfg,
		logger:    l,
		now:       time.Now,
	}
}

func (s *service) ClockIn(ctx context.Context, req ClockInRequest) (*AttendanceResponse, error) {
	return s.clockIn(ctx, req, VerificationManual, nil)
}

func (s *service) VerifyAndClockIn(ctx context.Context, req VerifyClockInRequest) (*AttendanceResponse, error) {
	if req.FaceConfidence == nil || *req.FaceConfidence < s.cfg.FaceConfidenceThreshold {
		s.recordAudit(ctx, req.ICNumber, nil, req.DeviceFingerprint, req.IPAddress,
			events.ActionClockIn, false, attendanceerrors.ErrLowConfidence.Message)
		return nil, attendanceerrors.ErrLowConfidence
	}

	return s.clockIn(ctx, ClockInRequest{
		ICNumber:          req.ICNumber,
		Latitude:          req.Latitude,
		Longitude:         req.Longitude,
		AccuracyMeters:    req.AccuracyMeters,
		DeviceFingerprint: req.DeviceFingerprint,
		DeviceInfo:        req.DeviceInfo,
		IPAddress:         req.IPAddress,
		UserAgent:         req.UserAgent,
	}, VerificationFaceScan, req.FaceConfidence)
}

func (s *service) clockIn(ctx context.Context, req ClockInRequest, method string, confidence *float64) (*AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	empl, err := s.lookupEmployee(ctx, req.EmployeeID, req.ICNumber, req.DeviceFingerprint, req.IPAddress, events.ActionClockIn)
	if err != nil {
		return nil, err
	}
	employeeID := empl.ID
	icNumber := empl.ICNumber

	distance, err := s.checkLocation(ctx, req.Latitude, req.Longitude, auditSubject{
		icNumber:    icNumber,
		employeeID:  &employeeID,
		fingerprint: req.DeviceFingerprint,
		ipAddress:   req.IPAddress,
		action:      events.ActionClockIn,
	})
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.cfg.Timezone)
	day := now.Format("2006-01-02")

	if err := s.devices.AuthorizeClockIn(ctx, req.DeviceFingerprint, employeeID.String(), now); err != nil {
		return nil, s.failGate(ctx, err, auditSubject{
			icNumber:    icNumber,
			employeeID:  &employeeID,
			fingerprint: req.DeviceFingerprint,
			ipAddress:   req.IPAddress,
			action:      events.ActionClockIn,
		})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin clock in tx failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	// Row lock dulu: kalau sudah ada record OPEN hari ini, tolak di sini.
	// Unique index uq_attendance_open_day menangkap race yang lolos lock.
	if _, err := txRepo.FindOpenByEmployeeAndDate(ctx, employeeID.String(), day, true); err == nil {
		s.recordAudit(ctx, icNumber, &employeeID, req.DeviceFingerprint, req.IPAddress,
			events.ActionClockIn, false, attendanceerrors.ErrAlreadyClockedIn.Message)
		return nil, attendanceerrors.ErrAlreadyClockedIn
	} else if !errors.Is(err, sql.ErrNoRows) {
		s.logger.Error("lock open attendance failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}

	syncStatus := SyncStatusNone
	if s.cfg.SyncEnabled {
		syncStatus = SyncStatusPending
	}

	record := &Attendance{
		ID:                 uuid.New(),
		EmployeeID:         employeeID,
		AttendanceDate:     day,
		ClockIn:            now,
		ClockInLatitude:    *req.Latitude,
		ClockInLongitude:   *req.Longitude,
		DeviceFingerprint:  req.DeviceFingerprint,
		DeviceInfo:         req.DeviceInfo,
		IPAddress:          req.IPAddress,
		UserAgent:          req.UserAgent,
		VerificationMethod: method,
		FaceConfidence:     confidence,
		Status:             StatusOpen,
		SyncStatus:         syncStatus,
	}

	if err := txRepo.Create(ctx, record); err != nil {
		if mapped := mapCreateError(err); errors.Is(mapped, attendanceerrors.ErrAlreadyClockedIn) {
			s.recordAudit(ctx, icNumber, &employeeID, req.DeviceFingerprint, req.IPAddress,
				events.ActionClockIn, false, attendanceerrors.ErrAlreadyClockedIn.Message)
			return nil, attendanceerrors.ErrAlreadyClockedIn
		}
		s.logger.Error("insert attendance failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}

	if s.cfg.SyncEnabled {
		if err := s.enqueueSync(ctx, tx, record, empl, events.ActionClockIn, now); err != nil {
			s.logger.Error("enqueue clock in sync failed", zap.String("request_id", rid), zap.Error(err))
			return nil, apperror.ErrStoreUnavailable
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit clock in failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}

	s.recordAudit(ctx, icNumber, &employeeID, req.DeviceFingerprint, req.IPAddress,
		events.ActionClockIn, true, "")
	s.logger.Info("clock in success",
		zap.String("request_id", rid),
		zap.String("attendance_id", record.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Float64("distance_m", distance),
		zap.String("verification", method),
	)

	resp := mapToResponse(record, distance)
	resp.EmployeeCode = empl.EmployeeCode
	resp.FullName = empl.FullName

	// Face verification yang lolos sekaligus membuka sesi untuk kiosk.
	if method == VerificationFaceScan && s.tokens != nil {
		token, err := s.tokens.IssueToken(empl)
		if err != nil {
			s.logger.Warn("issue session token failed", zap.String("request_id", rid), zap.Error(err))
		} else {
			resp.SessionToken = token
		}
	}

	return &resp, nil
}

func (s *service) ClockOut(ctx context.Context, req ClockOutRequest) (*ClockOutResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	empl, err := s.lookupEmployee(ctx, req.EmployeeID, "", req.DeviceFingerprint, req.IPAddress, events.ActionClockOut)
	if err != nil {
		return nil, err
	}
	employeeID := empl.ID
	icNumber := empl.ICNumber

	distance, err := s.checkLocation(ctx, req.Latitude, req.Longitude, auditSubject{
		icNumber:    icNumber,
		employeeID:  &employeeID,
		fingerprint: req.DeviceFingerprint,
		ipAddress:   req.IPAddress,
		action:      events.ActionClockOut,
	})
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.cfg.Timezone)
	day := now.Format("2006-01-02")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("begin clock out tx failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}
	defer tx.Rollback()

	txRepo := s.repo.WithTx(tx)

	record, err := txRepo.FindOpenByEmployeeAndDate(ctx, employeeID.String(), day, true)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.recordAudit(ctx, icNumber, &employeeID, req.DeviceFingerprint, req.IPAddress,
				events.ActionClockOut, false, attendanceerrors.ErrNotClockedIn.Message)
			return nil, attendanceerrors.ErrNotClockedIn
		}
		s.logger.Error("lock open attendance failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}

	// Cek device SETELAH record ditemukan: mismatch harus meninggalkan record
	// tetap OPEN (rollback), bukan menutupnya.
	if err := s.devices.AuthorizeClockOut(ctx, req.DeviceFingerprint, record.DeviceFingerprint); err != nil {
		return nil, s.failGate(ctx, err, auditSubject{
			icNumber:    icNumber,
			employeeID:  &employeeID,
			fingerprint: req.DeviceFingerprint,
			ipAddress:   req.IPAddress,
			action:      events.ActionClockOut,
		})
	}

	record.ClockOut = &now
	record.ClockOutLatitude = req.Latitude
	record.ClockOutLongitude = req.Longitude
	record.Status = StatusClosed
	if s.cfg.SyncEnabled {
		record.SyncStatus = SyncStatusPending
	}

	if err := txRepo.Close(ctx, record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Kalah race dengan clock out lain.
			s.recordAudit(ctx, icNumber, &employeeID, req.DeviceFingerprint, req.IPAddress,
				events.ActionClockOut, false, attendanceerrors.ErrNotClockedIn.Message)
			return nil, attendanceerrors.ErrNotClockedIn
		}
		s.logger.Error("close attendance failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}

	if s.cfg.SyncEnabled {
		if err := s.enqueueSync(ctx, tx, record, empl, events.ActionClockOut, now); err != nil {
			s.logger.Error("enqueue clock out sync failed", zap.String("request_id", rid), zap.Error(err))
			return nil, apperror.ErrStoreUnavailable
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit clock out failed", zap.String("request_id", rid), zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}

	duration := NewWorkingDuration(record.ClockIn, now)

	s.recordAudit(ctx, icNumber, &employeeID, req.DeviceFingerprint, req.IPAddress,
		events.ActionClockOut, true, "")
	s.logger.Info("clock out success",
		zap.String("request_id", rid),
		zap.String("attendance_id", record.ID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Int("working_minutes", duration.TotalMinutes),
	)

	resp := mapToResponse(record, distance)
	resp.EmployeeCode = empl.EmployeeCode
	resp.FullName = empl.FullName
	return &ClockOutResponse{
		AttendanceResponse: resp,
		WorkingDuration:    duration,
	}, nil
}

// GetStatus bersifat read-only: tidak menulis audit entry dan tidak menyentuh
// geofence maupun device policy.
func (s *service) GetStatus(ctx context.Context, employeeID, date string) (*StatusResponse, error) {
	empl, err := s.employees.FindActiveByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, apperror.ErrStoreUnavailable
	}

	if date == "" {
		date = s.now().In(s.cfg.Timezone).Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperror.InvalidField("date")
	}

	record, err := s.repo.FindLatestByEmployeeAndDate(ctx, empl.ID.String(), date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &StatusResponse{State: StateNotClockedIn, AttendanceDate: date}, nil
		}
		return nil, apperror.ErrStoreUnavailable
	}

	resp := mapToResponse(record, 0)
	resp.EmployeeCode = empl.EmployeeCode
	resp.FullName = empl.FullName

	status := &StatusResponse{
		AttendanceDate: date,
		Attendance:     &resp,
	}
	if record.Status == StatusOpen {
		status.State = StateClockedIn
	} else {
		status.State = StateClockedOut
		if record.ClockOut != nil {
			d := NewWorkingDuration(record.ClockIn, *record.ClockOut)
			status.WorkingDuration = &d
		}
	}
	return status, nil
}

func (s *service) GetHistory(ctx context.Context, employeeID string, limit int) ([]HistoryItem, error) {
	empl, err := s.employees.FindActiveByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		return nil, apperror.ErrStoreUnavailable
	}

	if limit <= 0 || limit > s.cfg.HistoryLimit {
		limit = s.cfg.HistoryLimit
	}

	rows, err := s.repo.FindAllByEmployee(ctx, empl.ID.String(), limit)
	if err != nil {
		return nil, apperror.ErrStoreUnavailable
	}

	items := make([]HistoryItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapToHistoryItem(row))
	}
	return items, nil
}

type auditSubject struct {
	icNumber    string
	employeeID  *uuid.UUID
	fingerprint string
	ipAddress   *string
	action      string
}

// lookupEmployee mencari karyawan aktif dari employee_id (klaim JWT) atau,
// pada jalur kiosk, dari IC number. Token milik karyawan yang sudah
// dinonaktifkan berakhir di sini juga.
func (s *service) lookupEmployee(ctx context.Context, employeeID, icNumber, fingerprint string, ip *string, action string) (*employee.Employee, error) {
	var (
		empl *employee.Employee
		err  error
	)
	if employeeID != "" {
		empl, err = s.employees.FindActiveByID(ctx, employeeID)
	} else {
		empl, err = s.employees.FindActiveByICNumber(ctx, icNumber)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.recordAudit(ctx, icNumber, nil, fingerprint, ip, action, false,
				employeeerrors.ErrEmployeeNotFound.Message)
			return nil, employeeerrors.ErrEmployeeNotFound
		}
		s.logger.Error("lookup employee failed", zap.Error(err))
		return nil, apperror.ErrStoreUnavailable
	}
	return empl, nil
}

func (s *service) checkLocation(ctx context.Context, lat, lon *float64, subject auditSubject) (float64, error) {
	if lat == nil || lon == nil {
		return 0, s.failGate(ctx, attendanceerrors.ErrMissingCoordinates, subject)
	}
	if !geofence.ValidCoordinates(*lat, *lon) {
		return 0, s.failGate(ctx, attendanceerrors.ErrInvalidCoordinates, subject)
	}

	distance, ok := s.fence.IsWithinRange(*lat, *lon)
	if !ok {
		return distance, s.failGate(ctx, attendanceerrors.OutOfRange(distance, s.fence.RadiusMeters), subject)
	}
	return distance, nil
}

// failGate menulis audit entry kegagalan lalu meneruskan error domain apa
// adanya. Error store (bukan *AppError) dinaikkan jadi ErrStoreUnavailable
// tanpa audit.
func (s *service) failGate(ctx context.Context, err error, subject auditSubject) error {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		s.logger.Error("gating check failed on store", zap.Error(err))
		return apperror.ErrStoreUnavailable
	}

	s.recordAudit(ctx, subject.icNumber, subject.employeeID, subject.fingerprint,
		subject.ipAddress, subject.action, false, appErr.Message)
	return appErr
}

func (s *service) recordAudit(ctx context.Context, icNumber string, employeeID *uuid.UUID, fingerprint string, ip *string, action string, success bool, reason string) {
	entry := audit.Entry{
		Fingerprint: fingerprint,
		IPAddress:   ip,
		Action:      action,
		Success:     success,
	}
	if icNumber != "" {
		entry.ICNumber = &icNumber
	}
	if employeeID != nil {
		id := *employeeID
		entry.EmployeeID = &id
	}
	if reason != "" {
		entry.FailureReason = &reason
	}
	s.audit.Record(ctx, entry)
}

func (s *service) enqueueSync(ctx context.Context, tx *sql.Tx, record *Attendance, empl *employee.Employee, action string, occurredAt time.Time) error {
	event := events.AttendanceSyncRequestedEvent{
		EventType:    "attendance.sync.requested",
		RequestID:    contextutil.GetRequestID(ctx),
		AttendanceID: record.ID.String(),
		EmployeeID:   record.EmployeeID.String(),
		EmployeeCode: empl.EmployeeCode,
		ICNumber:     empl.ICNumber,
		Action:       action,
		OccurredAt:   occurredAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     event.RequestID,
		AggregateType: "attendance",
		AggregateID:   record.ID.String(),
		EventType:     event.EventType,
		Topic:         events.AttendanceSyncTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}
