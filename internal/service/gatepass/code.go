package gatepass

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	"github.com/scanpoint-hq/scanpoint-backend-go/internal/domain/gatepass"
	"github.com/scanpoint-hq/scanpoint-backend-go/internal/pkg/clock"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeService generates pass codes and expiry policies. Codes combine
// a random segment, a base-36 timestamp segment and a second random
// segment as XXXX-XXXX-XX. Uniqueness is probabilistic: an insert-time
// collision is a retryable error, never an overwrite.
type CodeService struct {
	clk clock.Clock
}

func NewCodeService(clk clock.Clock) *CodeService {
	return &CodeService{clk: clk}
}

func (s *CodeService) GenerateCode() string {
	raw := randomSegment(3) + s.timestampSegment(5) + randomSegment(2)
	return raw[0:4] + "-" + raw[4:8] + "-" + raw[8:10]
}

// timestampSegment is the low n characters of the current millisecond
// timestamp in base 36.
func (s *CodeService) timestampSegment(n int) string {
	ts := strings.ToUpper(strconv.FormatInt(s.clk.Now().UnixMilli(), 36))
	if len(ts) > n {
		ts = ts[len(ts)-n:]
	}
	for len(ts) < n {
		ts = "0" + ts
	}
	return ts
}

func randomSegment(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform source is broken;
		// fall back to a timestamp-derived byte string.
		for i := range buf {
			buf[i] = byte(time.Now().UnixNano() >> (i * 8))
		}
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out)
}

// ComputeExpiry returns the expiry instant for a validity class:
// single lives 24 hours; day/week/month end at 23:59:59.999 of their
// last calendar day.
func (s *CodeService) ComputeExpiry(validity gatepass.Validity) time.Time {
	now := s.clk.Now()
	switch validity {
	case gatepass.ValiditySingle:
		return now.Add(24 * time.Hour)
	case gatepass.ValidityDay:
		return endOfDay(now)
	case gatepass.ValidityWeek:
		return endOfDay(now.AddDate(0, 0, 7))
	case gatepass.ValidityMonth:
		return endOfDay(now.AddDate(0, 1, 0))
	default:
		return now.Add(24 * time.Hour)
	}
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
