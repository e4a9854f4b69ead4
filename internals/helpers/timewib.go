package helper

import "time"

// Seluruh timestamp yang ditampilkan/dicatat sistem memakai WIB (UTC+7 fix,
// tanpa DST), mengikuti kebiasaan organisasi.
var WIB = time.FixedZone("WIB", 7*60*60)

func NowWIB() time.Time {
	return time.Now().In(WIB)
}

// DayNames indeks 0=Monday .. 6=Sunday, selaras dengan day_of_week jadwal piket.
var DayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayOfWeekWIB mengubah waktu ke indeks hari jadwal piket (0=Monday).
func DayOfWeekWIB(t time.Time) int {
	wd := int(t.In(WIB).Weekday()) // time.Weekday: 0=Sunday
	return (wd + 6) % 7
}
