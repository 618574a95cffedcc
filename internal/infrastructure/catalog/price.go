package catalog

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var dollarsThreshold = decimal.NewFromInt(1000) //nolint:gochecknoglobals // skip

// price цена из ответа каталога в центах. Целое число JSON уже в центах;
// дробное число или строка считается долларами, если меньше 1000, иначе
// центами. Пустое, null и мусор дают 0.
type price int64

func (p *price) UnmarshalJSON(b []byte) error {
	*p = price(parsePrice(b))
	return nil
}

func parsePrice(raw []byte) int64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}

	if raw[0] != '"' && !bytes.ContainsAny(raw, ".eE") {
		cents, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return 0
		}

		return cents
	}

	s := strings.TrimSpace(strings.Trim(string(raw), `"`))
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	if s == "" {
		return 0
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}

	if d.LessThan(dollarsThreshold) {
		d = d.Shift(2)
	}

	return d.Truncate(0).IntPart()
}

// flexInt целое, которое каталог иногда отдаёт строкой.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)

	n, err := strconv.Atoi(s)
	if err != nil {
		*f = 0
		return nil //nolint:nilerr // unknown volume is zero
	}

	*f = flexInt(n)

	return nil
}

// flexString строка, которую каталог иногда отдаёт числом.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}

	*f = flexString(strings.Trim(string(b), `"`))

	return nil
}
