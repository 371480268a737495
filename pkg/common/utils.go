package common

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

func GenerateTrxNo() string {
	const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	result := make([]byte, 7)
	for i := range result {
		result[i] = characters[r.Intn(len(characters))]
	}
	return string(result)
}

// FormatCurrency renders an amount with thousands separators and the EGP
// label, e.g. 1234567.5 -> "1,234,567.50 جنيه". The magnitude is always
// positive; sign is expressed by the debit/credit label, not here.
func FormatCurrency(amount float64) string {
	amount = math.Abs(amount)
	whole := int64(amount)
	frac := int64(math.Round((amount - float64(whole)) * 100))
	if frac == 100 {
		whole++
		frac = 0
	}

	digits := strconv.FormatInt(whole, 10)
	var b strings.Builder
	pre := len(digits) % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	return fmt.Sprintf("%s.%02d جنيه", b.String(), frac)
}

// FormatDate renders a timestamp the way it is embedded into persisted
// commission notes. Changing this changes stored data going forward.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// DaysUntil returns whole days from now until t, negative when t is past.
func DaysUntil(t time.Time, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}

// CompareLotNumbers orders lot numbers numerically when both parse as
// numbers ("2" before "10") and lexically otherwise.
func CompareLotNumbers(a, b string) int {
	na, errA := strconv.Atoi(strings.TrimSpace(a))
	nb, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a, b)
}
