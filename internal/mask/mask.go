// Package mask нормализует пользовательский ввод персональных данных:
// маски CPF и телефона плюс их валидация.
package mask

import "strings"

const (
	documentDigits = 11
	phoneDigits    = 11
)

// Digits убирает из строки всё, кроме цифр.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Document приводит ввод к маске NNN.NNN.NNN-NN. Функция тотальна и
// идемпотентна: лишние символы отбрасываются, разделители вставляются на
// фиксированных позициях, хвост за 11-й цифрой обрезается.
func Document(raw string) string {
	d := Digits(raw)
	if len(d) > documentDigits {
		d = d[:documentDigits]
	}

	var b strings.Builder
	for i := 0; i < len(d); i++ {
		switch i {
		case 3, 6:
			b.WriteByte('.')
		case 9:
			b.WriteByte('-')
		}
		b.WriteByte(d[i])
	}
	return b.String()
}

// Phone приводит ввод к маске (NN) NNNNN-NNNN. До третьей цифры скобки не
// ставятся, чтобы частичный ввод выглядел как в исходном поле.
func Phone(raw string) string {
	d := Digits(raw)
	if len(d) > phoneDigits {
		d = d[:phoneDigits]
	}
	if len(d) <= 2 {
		return d
	}

	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(d[:2])
	b.WriteString(") ")

	rest := d[2:]
	if len(rest) <= 5 {
		b.WriteString(rest)
		return b.String()
	}
	b.WriteString(rest[:5])
	b.WriteByte('-')
	b.WriteString(rest[5:])
	return b.String()
}

// ValidDocument проверяет CPF: ровно 11 цифр, не все одинаковые, обе
// контрольные цифры сходятся по алгоритму взвешенной суммы mod 11.
func ValidDocument(masked string) bool {
	d := Digits(masked)
	if len(d) != documentDigits {
		return false
	}
	if allSame(d) {
		return false
	}
	if checkDigit(d, 9) != int(d[9]-'0') {
		return false
	}
	return checkDigit(d, 10) == int(d[10]-'0')
}

// ValidPhone проверяет телефон: после снятия маски остаётся ровно 11 цифр.
func ValidPhone(masked string) bool {
	return len(Digits(masked)) == phoneDigits
}

// checkDigit считает контрольную цифру по первым n цифрам: веса n+1..2,
// остаток (сумма*10) mod 11, значения 10 и 11 схлопываются в 0.
func checkDigit(d string, n int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += int(d[i]-'0') * (n + 1 - i)
	}
	r := sum * 10 % 11
	if r == 10 || r == 11 {
		r = 0
	}
	return r
}

func allSame(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
