package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSlotsArgs(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantErr   bool
		wantProf  int64
		wantDate  string
		wantSvcID *int64
	}{
		{name: "without service", text: "/slots 10 2026-10-14", wantProf: 10, wantDate: "2026-10-14"},
		{name: "with service", text: "/slots 10 2026-10-14 3", wantProf: 10, wantDate: "2026-10-14", wantSvcID: int64Ptr(3)},
		{name: "extra spaces", text: "/slots   10    2026-10-14", wantProf: 10, wantDate: "2026-10-14"},
		{name: "missing date", text: "/slots 10", wantErr: true},
		{name: "bad date", text: "/slots 10 14.10.2026", wantErr: true},
		{name: "bad professional", text: "/slots abc 2026-10-14", wantErr: true},
		{name: "negative service", text: "/slots 10 2026-10-14 -1", wantErr: true},
		{name: "too many args", text: "/slots 10 2026-10-14 3 4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseSlotsArgs(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, errUsage)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantProf, req.ProfessionalID)
			assert.Equal(t, tt.wantDate, req.Date)
			assert.Equal(t, tt.wantSvcID, req.ServiceID)
		})
	}
}

func TestParseLinkAndVerifyArgs(t *testing.T) {
	clientID, phone, err := parseLinkArgs("/link 1000 +5511999990000")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), clientID)
	assert.Equal(t, "+5511999990000", phone)

	_, _, err = parseLinkArgs("/link 1000")
	assert.ErrorIs(t, err, errUsage)

	clientID, phone, code, err := parseVerifyArgs("/verify 1000 +5511999990000 123456")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), clientID)
	assert.Equal(t, "+5511999990000", phone)
	assert.Equal(t, "123456", code)

	_, _, _, err = parseVerifyArgs("/verify x +5511999990000 123456")
	assert.ErrorIs(t, err, errUsage)
}

func TestBookCallbackRoundTrip(t *testing.T) {
	data := BookCallbackData(10, "2026-10-14", "09:30:00", 3)
	assert.Equal(t, "book:10:2026-10-14:0930:3", data)
	assert.LessOrEqual(t, len(data), 64, "telegram callback data limit")

	req, err := parseBookCallback(data)
	require.NoError(t, err)
	assert.Equal(t, bookRequest{ProfessionalID: 10, Date: "2026-10-14", Time: "09:30:00", ServiceID: 3}, req)
}

func TestParseBookCallback_Invalid(t *testing.T) {
	for _, data := range []string{
		"book:",
		"book:10:2026-10-14:0930",
		"book:10:2026-10-14:930:3",
		"book:10:2026-10-14:2500:3",
		"book:10:yesterday:0930:3",
		"other:10:2026-10-14:0930:3",
	} {
		_, err := parseBookCallback(data)
		assert.Error(t, err, data)
	}
}

func int64Ptr(v int64) *int64 { return &v }
