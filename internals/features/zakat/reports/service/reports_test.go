package service

import (
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]any{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cash(amount string, on time.Time) CollectionRecord {
	return CollectionRecord{ID: uuid.New(), Type: "cash", Amount: dec(amount), Date: on}
}

func inKind(amount string, product *uuid.UUID, on time.Time) CollectionRecord {
	return CollectionRecord{ID: uuid.New(), Type: "in_kind", Amount: dec(amount), ProductTypeID: product, Date: on}
}

func dist(amount, status string, on time.Time) DistributionRecord {
	return DistributionRecord{ID: uuid.New(), Amount: dec(amount), Status: status, Date: on}
}

/* ===============================
   Valuation
=================================*/

func TestValueOf(t *testing.T) {
	rice := uuid.New()
	prices := NewPriceLookup([]ProductPrice{{ID: rice, Name: "Beras", Price: dec("12000")}})
	today := day(2024, 1, 1)

	t.Run("cash is its amount", func(t *testing.T) {
		assertDec(t, "100", ValueOf(cash("100", today), prices))
	})

	t.Run("in_kind with priced product is quantity times price", func(t *testing.T) {
		assertDec(t, "60000", ValueOf(inKind("5", &rice, today), prices))
	})

	t.Run("in_kind without product falls back to raw amount", func(t *testing.T) {
		assertDec(t, "5", ValueOf(inKind("5", nil, today), prices))
	})

	t.Run("in_kind with unknown product falls back to raw amount", func(t *testing.T) {
		other := uuid.New()
		assertDec(t, "5", ValueOf(inKind("5", &other, today), prices))
	})

	t.Run("missing amount counts as zero", func(t *testing.T) {
		assertDec(t, "0", ValueOf(CollectionRecord{Type: "cash"}, prices))
	})

	t.Run("distribution is its raw amount", func(t *testing.T) {
		assertDec(t, "250", DistributionValue(dist("250", "approved", today)))
	})
}

/* ===============================
   Aggregation
=================================*/

func TestTotalsAndBalance(t *testing.T) {
	rice := uuid.New()
	prices := PriceLookup{rice: dec("10")}
	on := day(2024, 2, 1)

	cols := []CollectionRecord{cash("100", on), inKind("3", &rice, on), cash("0", on)}
	dists := []DistributionRecord{dist("50", "approved", on), dist("20", "pending", on)}

	collected := TotalCollected(cols, prices)
	distributed := TotalDistributed(dists)

	assertDec(t, "130", collected)
	assertDec(t, "70", distributed)
	assertDec(t, "60", Balance(collected, distributed))
}

func TestBalance_CanBeNegative(t *testing.T) {
	on := day(2024, 2, 1)
	collected := TotalCollected([]CollectionRecord{cash("100", on)}, nil)
	distributed := TotalDistributed([]DistributionRecord{dist("150", "approved", on)})

	assertDec(t, "-50", Balance(collected, distributed))
}

func TestTotals_Empty(t *testing.T) {
	assertDec(t, "0", TotalCollected(nil, nil))
	assertDec(t, "0", TotalDistributed(nil))
}

func TestBreakdownByKey(t *testing.T) {
	type row struct {
		k string
		v string
	}
	key := func(r row) string { return r.k }
	val := func(r row) decimal.Decimal { return dec(r.v) }

	t.Run("even split", func(t *testing.T) {
		out := BreakdownByKey([]row{{"A", "50"}, {"B", "50"}}, key, val)
		require.Len(t, out, 2)
		assert.Equal(t, 50, out[0].Percentage)
		assert.Equal(t, 50, out[1].Percentage)
	})

	t.Run("thirds round to integers", func(t *testing.T) {
		out := BreakdownByKey([]row{{"A", "1"}, {"B", "2"}}, key, val)
		require.Len(t, out, 2)
		assert.Equal(t, 33, out[0].Percentage)
		assert.Equal(t, 67, out[1].Percentage)
	})

	t.Run("first-seen order and merged groups", func(t *testing.T) {
		out := BreakdownByKey([]row{{"B", "10"}, {"A", "5"}, {"B", "5"}, {"C", "0"}}, key, val)
		require.Len(t, out, 3)
		assert.Equal(t, []string{"B", "A", "C"}, []string{out[0].Name, out[1].Name, out[2].Name})
		assertDec(t, "15", out[0].Value)
		assert.Equal(t, 75, out[0].Percentage)
		assert.Equal(t, 25, out[1].Percentage)
		assert.Equal(t, 0, out[2].Percentage)
	})

	t.Run("colors assigned round-robin by first-seen index", func(t *testing.T) {
		rows := make([]row, 0, len(Palette)+1)
		for i := 0; i <= len(Palette); i++ {
			rows = append(rows, row{k: string(rune('A' + i)), v: "1"})
		}
		out := BreakdownByKey(rows, key, val)
		require.Len(t, out, len(Palette)+1)
		assert.Equal(t, Palette[0], out[0].Color)
		assert.Equal(t, Palette[1], out[1].Color)
		assert.Equal(t, Palette[0], out[len(Palette)].Color)
	})

	t.Run("zero total yields empty list", func(t *testing.T) {
		out := BreakdownByKey([]row{{"A", "0"}, {"B", "0"}}, key, val)
		assert.NotNil(t, out)
		assert.Empty(t, out)

		assert.Empty(t, BreakdownByKey(nil, key, val))
	})

	t.Run("empty key is grouped as unknown", func(t *testing.T) {
		out := BreakdownByKey([]row{{"", "4"}}, key, val)
		require.Len(t, out, 1)
		assert.Equal(t, UnknownGroup, out[0].Name)
		assert.Equal(t, 100, out[0].Percentage)
	})
}

func TestCannedBreakdowns(t *testing.T) {
	rice := uuid.New()
	prices := PriceLookup{rice: dec("10")}
	on := day(2024, 3, 1)

	cols := []CollectionRecord{
		{Type: "cash", Amount: dec("70"), MosqueName: "Al-Ikhlas", Date: on},
		{Type: "in_kind", Amount: dec("3"), ProductTypeID: &rice, ProductName: "Beras", MosqueName: "An-Nur", Date: on},
	}

	byType := CollectionsByType(cols, prices)
	require.Len(t, byType, 2)
	assert.Equal(t, "cash", byType[0].Name)
	assert.Equal(t, 70, byType[0].Percentage)

	byProduct := CollectionsByProduct(cols, prices)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "Beras", byProduct[0].Name)
	assert.Equal(t, 100, byProduct[0].Percentage)

	byMosque := CollectedByMosque(cols, prices)
	assert.Equal(t, "Al-Ikhlas", byMosque[0].Name)

	dists := []DistributionRecord{
		{Amount: dec("10"), Status: "completed", MosqueName: "An-Nur"},
		{Amount: dec("30"), Status: "pending", MosqueName: "An-Nur"},
	}
	byStatus := DistributedByStatus(dists)
	require.Len(t, byStatus, 2)
	assert.Equal(t, "approved", byStatus[0].Name)
	assert.Equal(t, 25, byStatus[0].Percentage)

	assert.Len(t, DistributedByMosque(dists), 1)
}

func TestPercentage_ZeroTotal(t *testing.T) {
	assert.Equal(t, 0, Percentage(dec("5"), decimal.Zero))
}

func TestSummarize(t *testing.T) {
	rice := uuid.New()
	prices := PriceLookup{rice: dec("10")}
	on := day(2024, 3, 1)

	s := Summarize(
		[]CollectionRecord{cash("100", on), inKind("2", &rice, on)},
		[]DistributionRecord{dist("30", "approved", on), dist("10", "completed", on), dist("5", "pending", on), dist("1", "rejected", on)},
		prices,
	)

	assertDec(t, "120", s.TotalCollected)
	assertDec(t, "46", s.TotalDistributed)
	assertDec(t, "74", s.Balance)
	assertDec(t, "100", s.CashCollected)
	assertDec(t, "20", s.InKindCollected)
	assert.Equal(t, 2, s.CollectionCount)
	assert.Equal(t, 4, s.DistributionCount)
	assert.Equal(t, 2, s.ApprovedCount)
	assert.Equal(t, 1, s.PendingCount)
	assert.Equal(t, 1, s.RejectedCount)
}

/* ===============================
   Time bucketing
=================================*/

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, Monthly, g)

	g, err = ParseGranularity("DAILY")
	require.NoError(t, err)
	assert.Equal(t, Daily, g)

	_, err = ParseGranularity("weekly")
	assert.Error(t, err)
}

func TestTrend_MonthlyOrdering(t *testing.T) {
	cols := []CollectionRecord{
		cash("30", day(2024, 3, 10)),
		cash("10", day(2024, 1, 5)),
		cash("5", day(2023, 12, 31)),
		cash("1", day(2024, 1, 20)),
	}
	tr := BucketTrend(cols, nil, Monthly, nil)

	require.False(t, tr.Synthetic)
	require.Len(t, tr.Points, 3)
	assert.Equal(t, []string{"12/2023", "1/2024", "3/2024"},
		[]string{tr.Points[0].Label, tr.Points[1].Label, tr.Points[2].Label})
	assertDec(t, "11", tr.Points[1].Collections)
}

func TestTrend_UnionWithZeroFill(t *testing.T) {
	cols := []CollectionRecord{cash("100", day(2024, 1, 5))}
	dists := []DistributionRecord{dist("40", "approved", day(2024, 2, 5))}

	tr := BucketTrend(cols, dists, Monthly, nil)
	require.Len(t, tr.Points, 2)

	assert.Equal(t, "1/2024", tr.Points[0].Label)
	assertDec(t, "100", tr.Points[0].Collections)
	assertDec(t, "0", tr.Points[0].Distributions)

	assert.Equal(t, "2/2024", tr.Points[1].Label)
	assertDec(t, "0", tr.Points[1].Collections)
	assertDec(t, "40", tr.Points[1].Distributions)
}

func TestTrend_UsesValuationForCollectionsOnly(t *testing.T) {
	rice := uuid.New()
	prices := PriceLookup{rice: dec("1000")}
	on := day(2024, 5, 1)

	tr := BucketTrend([]CollectionRecord{inKind("2", &rice, on)}, []DistributionRecord{dist("3", "approved", on)}, Monthly, prices)
	require.Len(t, tr.Points, 1)
	assertDec(t, "2000", tr.Points[0].Collections)
	assertDec(t, "3", tr.Points[0].Distributions)
}

func TestTrend_DailyKeepsLast30(t *testing.T) {
	start := day(2024, 1, 1)
	var cols []CollectionRecord
	for i := 0; i < 35; i++ {
		cols = append(cols, cash("1", start.AddDate(0, 0, i)))
	}

	tr := BucketTrend(cols, nil, Daily, nil)
	require.Len(t, tr.Points, DailyWindow)
	assert.Equal(t, "2024-01-06", tr.Points[0].Key)
	assert.Equal(t, "Jan 6", tr.Points[0].Label)
	assert.Equal(t, "2024-02-04", tr.Points[29].Key)
	assert.Equal(t, "Feb 4", tr.Points[29].Label)
}

func TestTrend_DailyMergesSameDay(t *testing.T) {
	cols := []CollectionRecord{
		cash("1", time.Date(2024, 4, 2, 8, 0, 0, 0, time.UTC)),
		cash("2", time.Date(2024, 4, 2, 17, 30, 0, 0, time.UTC)),
	}
	tr := BucketTrend(cols, nil, Daily, nil)
	require.Len(t, tr.Points, 1)
	assertDec(t, "3", tr.Points[0].Collections)
}

func TestTrend_FallbackWhenEmpty(t *testing.T) {
	now := time.Date(2024, 8, 15, 10, 0, 0, 0, time.UTC)
	b := &Bucketer{Now: func() time.Time { return now }, Rand: rand.New(rand.NewSource(1)), Fallback: true}

	t.Run("monthly placeholder has 6 trailing months", func(t *testing.T) {
		tr := b.Trend(nil, nil, Monthly, nil)
		require.True(t, tr.Synthetic)
		require.Len(t, tr.Points, FallbackMonths)
		assert.Equal(t, "3/2024", tr.Points[0].Label)
		assert.Equal(t, "8/2024", tr.Points[5].Label)
		for _, p := range tr.Points {
			assert.True(t, p.Collections.GreaterThanOrEqual(dec("1000")))
			assert.True(t, p.Collections.LessThan(dec("10000")))
		}
	})

	t.Run("daily placeholder has 30 trailing days", func(t *testing.T) {
		tr := b.Trend(nil, nil, Daily, nil)
		require.True(t, tr.Synthetic)
		require.Len(t, tr.Points, DailyWindow)
		assert.Equal(t, "2024-07-17", tr.Points[0].Key)
		assert.Equal(t, "2024-08-15", tr.Points[29].Key)
	})

	t.Run("fallback disabled yields empty series", func(t *testing.T) {
		off := &Bucketer{Fallback: false}
		tr := off.Trend(nil, nil, Monthly, nil)
		assert.False(t, tr.Synthetic)
		assert.Empty(t, tr.Points)
	})
}

func TestRunningBalance(t *testing.T) {
	points := []TrendPoint{
		{Key: "a", Collections: dec("100"), Distributions: dec("30")},
		{Key: "b", Collections: dec("0"), Distributions: dec("90")},
		{Key: "c", Collections: dec("50"), Distributions: dec("0")},
	}
	out := RunningBalance(points)
	require.Len(t, out, 3)
	assertDec(t, "70", out[0].Balance)
	assertDec(t, "-20", out[1].Balance)
	assertDec(t, "30", out[2].Balance)
}

func TestTotalsByMosque(t *testing.T) {
	a, b, outside := uuid.New(), uuid.New(), uuid.New()
	rice := uuid.New()
	prices := NewPriceLookup([]ProductPrice{{ID: rice, Name: "Beras", Price: dec("12000")}})

	c1 := cash("100000", day(2024, 1, 1))
	c1.MosqueID = a
	c2 := inKind("5", &rice, day(2024, 1, 2))
	c2.MosqueID = a
	c3 := cash("999", day(2024, 1, 3))
	c3.MosqueID = outside
	d1 := dist("200000", "approved", day(2024, 1, 4))
	d1.MosqueID = a

	rows := TotalsByMosque(
		[]MosqueRef{{ID: a, Name: "Al-Falah"}, {ID: b, Name: "An-Nur"}},
		[]CollectionRecord{c1, c2, c3},
		[]DistributionRecord{d1},
		prices,
	)
	require.Len(t, rows, 2)
	assert.Equal(t, "Al-Falah", rows[0].Name)
	assertDec(t, "160000", rows[0].Collected)
	assertDec(t, "200000", rows[0].Distributed)
	assertDec(t, "-40000", rows[0].Balance)

	assert.Equal(t, "An-Nur", rows[1].Name)
	assertDec(t, "0", rows[1].Collected)
	assertDec(t, "0", rows[1].Balance)
}

func TestRecordFromModels(t *testing.T) {
	d := DistributionRecordFrom(distributionModel.DistributionModel{Status: "Completed", Amount: dec("5")})
	assert.Equal(t, distributionModel.DistributionStatusApproved, d.Status)

	c := CollectionRecordFrom(collectionModel.CollectionModel{Type: "cash", Amount: dec("7"), CollectedOn: day(2024, 2, 1)})
	assertDec(t, "7", ValueOf(c, nil))
	assert.Equal(t, day(2024, 2, 1), c.Date)
}
