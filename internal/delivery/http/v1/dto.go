package v1

import (
	"strings"
	"time"

	"github.com/Raimguhinov/alarm-go/internal/alarm"
)

// alarmRequest is the create/replace payload. Optional fields use pointers
// so absent values pick up the documented defaults.
type alarmRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Time          string   `json:"time"`
	Enabled       *bool    `json:"enabled"`
	RepeatType    string   `json:"repeatType"`
	RepeatDays    []string `json:"repeatDays"`
	IntervalDays  *int     `json:"intervalDays"`
	SnoozeMinutes *int     `json:"snoozeMinutes"`
	Sound         string   `json:"sound"`
	Vibrate       *bool    `json:"vibrate"`
	GradualVolume *bool    `json:"gradualVolume"`
}

func (req *alarmRequest) toDomain(ownerID string) *alarm.Alarm {
	a := &alarm.Alarm{
		OwnerID:       ownerID,
		Title:         strings.TrimSpace(req.Title),
		Description:   strings.TrimSpace(req.Description),
		Time:          req.Time,
		Enabled:       true,
		RepeatType:    alarm.RepeatOnce,
		RepeatDays:    req.RepeatDays,
		IntervalDays:  1,
		SnoozeMinutes: 5,
		Sound:         "default",
		Vibrate:       true,
		GradualVolume: false,
	}

	if req.Enabled != nil {
		a.Enabled = *req.Enabled
	}
	if req.RepeatType != "" {
		a.RepeatType = alarm.RepeatType(req.RepeatType)
	}
	if a.RepeatType != alarm.RepeatCustom {
		a.RepeatDays = nil
	}
	if req.IntervalDays != nil {
		a.IntervalDays = *req.IntervalDays
	}
	if req.SnoozeMinutes != nil {
		a.SnoozeMinutes = *req.SnoozeMinutes
	}
	if req.Sound != "" {
		a.Sound = req.Sound
	}
	if req.Vibrate != nil {
		a.Vibrate = *req.Vibrate
	}
	if req.GradualVolume != nil {
		a.GradualVolume = *req.GradualVolume
	}

	return a
}

type alarmResponse struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Time          string     `json:"time"`
	Enabled       bool       `json:"enabled"`
	RepeatType    string     `json:"repeatType"`
	RepeatDays    []string   `json:"repeatDays"`
	IntervalDays  int        `json:"intervalDays"`
	SnoozeMinutes int        `json:"snoozeMinutes"`
	Sound         string     `json:"sound"`
	Vibrate       bool       `json:"vibrate"`
	GradualVolume bool       `json:"gradualVolume"`
	State         string     `json:"state"`
	LastFired     *time.Time `json:"lastFired,omitempty"`
	SnoozedUntil  *time.Time `json:"snoozedUntil,omitempty"`
	NextFireAt    *time.Time `json:"nextFireAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func newAlarmResponse(a *alarm.Alarm, reference time.Time) alarmResponse {
	lc := alarm.NewLifecycle(a)

	resp := alarmResponse{
		ID:            a.ID.String(),
		UserID:        a.OwnerID,
		Title:         a.Title,
		Description:   a.Description,
		Time:          a.Time,
		Enabled:       a.Enabled,
		RepeatType:    string(a.RepeatType),
		RepeatDays:    a.RepeatDays,
		IntervalDays:  a.IntervalDays,
		SnoozeMinutes: a.SnoozeMinutes,
		Sound:         a.Sound,
		Vibrate:       a.Vibrate,
		GradualVolume: a.GradualVolume,
		State:         string(lc.State()),
		LastFired:     a.LastFired,
		SnoozedUntil:  a.SnoozedUntil,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}

	if resp.RepeatDays == nil {
		resp.RepeatDays = []string{}
	}
	if next, ok := lc.NextFire(reference); ok {
		resp.NextFireAt = &next
	}

	return resp
}

type alarmListResponse []alarmResponse

func newAlarmListResponse(alarms []alarm.Alarm, reference time.Time) alarmListResponse {
	resp := make(alarmListResponse, 0, len(alarms))
	for i := range alarms {
		resp = append(resp, newAlarmResponse(&alarms[i], reference))
	}
	return resp
}

type deleteResponse struct {
	Message string        `json:"message"`
	Alarm   alarmResponse `json:"alarm"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
}

type welcomeResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
