package validity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) Date {
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestAddYearsClampsLeapDay(t *testing.T) {
	leap := NewDate(2020, time.February, 29)
	assert.Equal(t, NewDate(2021, time.February, 28), leap.AddYears(1))
	assert.Equal(t, NewDate(2024, time.February, 29), leap.AddYears(4))
	assert.Equal(t, NewDate(2022, time.March, 1), NewDate(2021, time.March, 1).AddYears(1))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, "2021-01-23", mustDate(t, "2021-01-01").AddDays(22).String())
	assert.Equal(t, "2020-12-04", mustDate(t, "2021-01-01").AddDays(-28).String())
	assert.Equal(t, "2021-03-01", mustDate(t, "2021-02-01").AddDays(28).String())
}

func TestDateOfDropsTimeOfDay(t *testing.T) {
	zurich := time.FixedZone("CET", 3600)
	ts := time.Date(2021, time.May, 3, 0, 30, 0, 0, zurich)
	assert.Equal(t, "2021-05-03", DateOf(ts).String())
	assert.True(t, DateOf(time.Time{}).IsZero())
	assert.True(t, DateOfPtr(nil).IsZero())
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(NewDateRange(mustDate(t, "2021-01-23"), Date{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2021-01-23","end":null}`, string(b))

	var r DateRange
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2021-02-01","end":"2022-02-01"}`), &r))
	assert.Equal(t, "[2021-02-01,2022-02-01)", r.String())
}

type rangeRelationCase struct {
	name     string
	a, b     [2]string
	leftOf   bool
	rightOf  bool
	overlaps bool
}

func TestDateRangeRelations(t *testing.T) {
	cases := []rangeRelationCase{
		{"disjoint", [2]string{"2021-01-01", "2021-01-05"}, [2]string{"2021-02-01", "2021-03-01"}, true, false, false},
		{"touching end is exclusive", [2]string{"2021-01-01", "2021-01-05"}, [2]string{"2021-01-05", "2021-01-10"}, true, false, false},
		{"one shared day", [2]string{"2021-01-01", "2021-01-06"}, [2]string{"2021-01-05", "2021-01-10"}, false, false, true},
		{"contained", [2]string{"2021-01-01", "2021-12-31"}, [2]string{"2021-03-01", "2021-04-01"}, false, false, true},
		{"after", [2]string{"2022-01-01", "2022-02-01"}, [2]string{"2021-01-01", "2021-02-01"}, false, true, false},
		{"empty", [2]string{"2021-01-05", "2021-01-05"}, [2]string{"2021-02-01", "2021-03-01"}, false, false, false},
		{"inverted", [2]string{"2021-01-10", "2021-01-05"}, [2]string{"2021-01-01", "2021-03-01"}, false, false, false},
	}

	for _, c := range cases {
		a := NewDateRange(mustDate(t, c.a[0]), mustDate(t, c.a[1]))
		b := NewDateRange(mustDate(t, c.b[0]), mustDate(t, c.b[1]))
		assert.Equal(t, c.leftOf, a.StrictlyLeftOf(b), "%s: <<", c.name)
		assert.Equal(t, c.rightOf, a.StrictlyRightOf(b), "%s: >>", c.name)
		assert.Equal(t, c.overlaps, a.Overlaps(b), "%s: &&", c.name)
		assert.Equal(t, c.overlaps, b.Overlaps(a), "%s: && is symmetric", c.name)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := NewDateRange(mustDate(t, "2021-02-01"), mustDate(t, "2022-02-01"))
	assert.True(t, r.Contains(mustDate(t, "2021-02-01")))
	assert.True(t, r.Contains(mustDate(t, "2022-01-31")))
	assert.False(t, r.Contains(mustDate(t, "2022-02-01")))
	assert.False(t, r.Contains(mustDate(t, "2021-01-31")))
	assert.False(t, r.Contains(Date{}))
}

func TestMinMaxIgnoreUnknownDates(t *testing.T) {
	a, b := mustDate(t, "2021-01-01"), mustDate(t, "2021-01-15")
	assert.Equal(t, a, minDate(Date{}, b, a))
	assert.Equal(t, b, maxDate(a, Date{}, b))
	assert.True(t, minDate(Date{}, Date{}).IsZero())
	assert.Equal(t, b, coalesce(Date{}, b, a))
}
