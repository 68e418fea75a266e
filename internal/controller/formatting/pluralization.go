package formatting

func pluralize(count int, one, few, many string) string {
	if count%10 == 1 && count%100 != 11 {
		return one
	}
	if count%10 >= 2 && count%10 <= 4 && (count%100 < 10 || count%100 >= 20) {
		return few
	}
	return many
}

// PluralizeSessions склонение слова "тренировка"
func PluralizeSessions(count int) string {
	return pluralize(count, "тренировка", "тренировки", "тренировок")
}

// PluralizeShifts склонение слова "смена"
func PluralizeShifts(count int) string {
	return pluralize(count, "смена", "смены", "смен")
}
