package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops/hrms-backend-go/internal/pkg/validator"
)

func TestCorrectionRequestValidate(t *testing.T) {
	t.Run("valid correction passes", func(t *testing.T) {
		req := CorrectionRequest{
			CheckIn:  "09:00",
			CheckOut: "17:30",
			Reason:   "badge reader was offline",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("check-out before check-in is rejected", func(t *testing.T) {
		req := CorrectionRequest{
			CheckIn:  "09:00",
			CheckOut: "08:00",
			Reason:   "badge reader was offline",
		}
		err := req.Validate()
		require.Error(t, err)

		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Equal(t, "check-out time must be after check-in time", verrs.ToMap()["check_out"])
	})

	t.Run("check-out equal to check-in is rejected", func(t *testing.T) {
		req := CorrectionRequest{
			CheckIn:  "09:00",
			CheckOut: "09:00",
			Reason:   "badge reader was offline",
		}
		err := req.Validate()
		require.Error(t, err)

		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Contains(t, verrs.ToMap(), "check_out")
	})

	t.Run("empty reason is rejected even with valid times", func(t *testing.T) {
		req := CorrectionRequest{
			CheckIn:  "09:00",
			CheckOut: "17:00",
			Reason:   "   ",
		}
		err := req.Validate()
		require.Error(t, err)

		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Contains(t, verrs.ToMap(), "reason")
	})

	t.Run("missing check-in is rejected", func(t *testing.T) {
		req := CorrectionRequest{
			CheckOut: "17:00",
			Reason:   "forgot to check in",
		}
		err := req.Validate()
		require.Error(t, err)

		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Contains(t, verrs.ToMap(), "check_in")
	})

	t.Run("malformed times are rejected", func(t *testing.T) {
		req := CorrectionRequest{
			CheckIn:  "9am",
			CheckOut: "later",
			Reason:   "forgot",
		}
		err := req.Validate()
		require.Error(t, err)

		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Contains(t, verrs.ToMap(), "check_in")
		assert.Contains(t, verrs.ToMap(), "check_out")
	})

	t.Run("check-out alone is optional", func(t *testing.T) {
		req := CorrectionRequest{
			CheckIn: "09:00",
			Reason:  "half day, still on site",
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown reason category is rejected", func(t *testing.T) {
		req := CorrectionRequest{
			CheckIn:        "09:00",
			Reason:         "forgot",
			ReasonCategory: "whatever",
		}
		err := req.Validate()
		require.Error(t, err)

		verrs, ok := err.(validator.ValidationErrors)
		require.True(t, ok)
		assert.Contains(t, verrs.ToMap(), "reason_category")
	})
}

func TestAttendanceFilterValidate(t *testing.T) {
	str := func(s string) *string { return &s }

	t.Run("valid filter passes", func(t *testing.T) {
		f := AttendanceFilter{
			Date:   str("2024-01-15"),
			Status: str("present"),
		}
		assert.NoError(t, f.Validate())
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		f := AttendanceFilter{Date: str("15/01/2024")}
		assert.Error(t, f.Validate())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		f := AttendanceFilter{Status: str("vacationing")}
		assert.Error(t, f.Validate())
	})
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range ValidStatuses {
		assert.True(t, IsValidStatus(s))
	}
	assert.False(t, IsValidStatus(Status("retired")))
}
