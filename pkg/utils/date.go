package utils

import (
	"time"
)

// KST é o fuso de referência das datas de coleta (UTC+9, sem horário de verão)
var KST = time.FixedZone("KST", 9*60*60)

// DateOf trunca o instante para a data civil em UTC
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// YesterdayKST é a data civil de ontem em UTC+9
func YesterdayKST(now time.Time) time.Time {
	return DateOf(now.In(KST).AddDate(0, 0, -1))
}
