package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawwatch/lawwatch/internal/dates"
	"github.com/lawwatch/lawwatch/internal/notice"
)

func datePtr(y, m, d int) *dates.Date {
	return &dates.Date{Year: y, Month: m, Day: d}
}

func TestCategorize(t *testing.T) {
	t.Parallel()

	today := dates.Date{Year: 2024, Month: 6, Day: 10}

	tests := []struct {
		name         string
		issued       *dates.Date
		deadline     *dates.Date
		want         Category
		wantUntil    *int
		wantSince    *int
	}{
		{
			name: "deadline in two days", deadline: datePtr(2024, 6, 12),
			want: DueSoon, wantUntil: intPtr(2),
		},
		{
			name: "deadline today", deadline: datePtr(2024, 6, 10),
			want: DueSoon, wantUntil: intPtr(0),
		},
		{
			name: "deadline exactly seven days out", deadline: datePtr(2024, 6, 17),
			want: DueSoon, wantUntil: intPtr(7),
		},
		{
			name: "deadline eight days out", deadline: datePtr(2024, 6, 18),
			want: Active, wantUntil: intPtr(8),
		},
		{
			name: "deadline passed", deadline: datePtr(2024, 6, 1),
			want: Expired, wantUntil: intPtr(-9),
		},
		{
			name: "deadline wins over issued", issued: datePtr(2020, 1, 1), deadline: datePtr(2024, 6, 12),
			want: DueSoon, wantUntil: intPtr(2),
		},
		{
			name: "issued eleven days ago", issued: datePtr(2024, 5, 30),
			want: DueSoon, wantSince: intPtr(11),
		},
		{
			name: "issued fourteen days ago", issued: datePtr(2024, 5, 27),
			want: DueSoon, wantSince: intPtr(14),
		},
		{
			name: "issued fifteen days ago", issued: datePtr(2024, 5, 26),
			want: Active, wantSince: intPtr(15),
		},
		{
			name: "issued ninety days ago", issued: datePtr(2024, 3, 12),
			want: Active, wantSince: intPtr(90),
		},
		{
			name: "issued ninety-one days ago", issued: datePtr(2024, 3, 11),
			want: Expired, wantSince: intPtr(91),
		},
		{
			name: "issued in the future clamps to zero", issued: datePtr(2024, 6, 20),
			want: DueSoon, wantSince: intPtr(0),
		},
		{
			name: "no dates at all",
			want: NoDeadline,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, until, since := Categorize(today, tt.issued, tt.deadline)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantUntil, until)
			assert.Equal(t, tt.wantSince, since)
			if tt.issued != nil || tt.deadline != nil {
				assert.True(t, (until == nil) != (since == nil),
					"exactly one day counter must be set when a usable date exists")
			} else {
				assert.Nil(t, until)
				assert.Nil(t, since)
			}
		})
	}
}

func TestEnrich(t *testing.T) {
	t.Parallel()

	today := dates.Date{Year: 2024, Month: 6, Day: 10}
	raw := []notice.Document{
		{Subject: "近期公告", Issuer: "內政部", Date: "2024-06-01"},
		{Subject: "未署日期", Issuer: "高雄市政府"},
		{Subject: "壞日期", Date: "日期未定"},
	}

	docs := Enrich(raw, today)
	require.Len(t, docs, 3)

	first := docs[0]
	assert.Equal(t, DueSoon, first.DeadlineCategory)
	require.NotNil(t, first.DaysSinceIssued)
	assert.Equal(t, 9, *first.DaysSinceIssued)
	assert.Equal(t, RegionCentral, first.Region)
	assert.Equal(t, "內政部", first.PriorityIssuer)

	assert.Equal(t, NoDeadline, docs[1].DeadlineCategory)
	assert.Equal(t, RegionKaohsiung, docs[1].Region)

	assert.Equal(t, NoDeadline, docs[2].DeadlineCategory, "unparseable date degrades to absence")
	assert.Nil(t, docs[2].IssuedDate)

	// Inputs must not be mutated.
	assert.Equal(t, "近期公告", raw[0].Subject)
}

func TestValidCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("urgent"))
}

func intPtr(v int) *int { return &v }
