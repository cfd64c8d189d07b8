package service

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Granularity string

const (
	Monthly Granularity = "monthly"
	Daily   Granularity = "daily"

	// jumlah bucket harian yang ditampilkan (paling baru)
	DailyWindow = 30
	// panjang seri placeholder bulanan
	FallbackMonths = 6
)

func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case "", Monthly:
		return Monthly, nil
	case Daily:
		return Daily, nil
	default:
		return "", fmt.Errorf("granularity must be monthly or daily, got %q", s)
	}
}

type TrendPoint struct {
	Key           string          `json:"key"`
	Label         string          `json:"label"`
	Collections   decimal.Decimal `json:"collections"`
	Distributions decimal.Decimal `json:"distributions"`
}

// Trend.Synthetic = true berarti tidak ada data; Points berisi placeholder.
type Trend struct {
	Granularity Granularity  `json:"granularity"`
	Points      []TrendPoint `json:"points"`
	Synthetic   bool         `json:"synthetic"`
}

// Bucketer mengelompokkan records ke bucket waktu.
// Now & Rand bisa diganti di test; nil → jam sistem & seed acak.
type Bucketer struct {
	Now      func() time.Time
	Rand     *rand.Rand
	Fallback bool
}

func NewBucketer() *Bucketer {
	return &Bucketer{Fallback: true}
}

// BucketTrend memakai Bucketer default (fallback aktif).
func BucketTrend(collections []CollectionRecord, distributions []DistributionRecord, g Granularity, prices PriceLookup) Trend {
	return NewBucketer().Trend(collections, distributions, g, prices)
}

type bucket struct {
	sortKey int64
	key     string
	label   string
	col     decimal.Decimal
	dist    decimal.Decimal
}

func (b *Bucketer) Trend(collections []CollectionRecord, distributions []DistributionRecord, g Granularity, prices PriceLookup) Trend {
	if g != Daily {
		g = Monthly
	}
	if len(collections) == 0 && len(distributions) == 0 {
		if !b.Fallback {
			return Trend{Granularity: g, Points: []TrendPoint{}}
		}
		return Trend{Granularity: g, Points: b.placeholder(g), Synthetic: true}
	}

	buckets := map[string]*bucket{}
	get := func(t time.Time) *bucket {
		sk, key, label := bucketOf(t, g)
		bk, ok := buckets[key]
		if !ok {
			bk = &bucket{sortKey: sk, key: key, label: label, col: decimal.Zero, dist: decimal.Zero}
			buckets[key] = bk
		}
		return bk
	}

	for _, c := range collections {
		bk := get(c.Date)
		bk.col = bk.col.Add(ValueOf(c, prices))
	}
	for _, d := range distributions {
		bk := get(d.Date)
		bk.dist = bk.dist.Add(DistributionValue(d))
	}

	list := make([]*bucket, 0, len(buckets))
	for _, bk := range buckets {
		list = append(list, bk)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].sortKey < list[j].sortKey })

	if g == Daily && len(list) > DailyWindow {
		list = list[len(list)-DailyWindow:]
	}

	points := make([]TrendPoint, 0, len(list))
	for _, bk := range list {
		points = append(points, TrendPoint{Key: bk.key, Label: bk.label, Collections: bk.col, Distributions: bk.dist})
	}
	return Trend{Granularity: g, Points: points}
}

// bucketOf → (kunci urut, key, label). Tanggal dibaca apa adanya (tanpa konversi zona).
func bucketOf(t time.Time, g Granularity) (int64, string, string) {
	y, m, d := t.Date()
	if g == Daily {
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return day.Unix(), day.Format("2006-01-02"), day.Format("Jan 2")
	}
	return int64(y)*12 + int64(m) - 1, fmt.Sprintf("%04d-%02d", y, int(m)), fmt.Sprintf("%d/%d", int(m), y)
}

// placeholder: 6 bulan / 30 hari terakhir (kronologis) dengan nilai acak terbatas.
func (b *Bucketer) placeholder(g Granularity) []TrendPoint {
	now := time.Now()
	if b.Now != nil {
		now = b.Now()
	}
	r := b.Rand
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	y, m, d := now.Date()

	var points []TrendPoint
	if g == Daily {
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(DailyWindow - 1))
		for i := 0; i < DailyWindow; i++ {
			day := start.AddDate(0, 0, i)
			_, key, label := bucketOf(day, Daily)
			points = append(points, randomPoint(r, key, label, 100, 1000, 50, 800))
		}
		return points
	}

	first := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(FallbackMonths - 1), 0)
	for i := 0; i < FallbackMonths; i++ {
		month := first.AddDate(0, i, 0)
		_, key, label := bucketOf(month, Monthly)
		points = append(points, randomPoint(r, key, label, 1000, 10000, 500, 8000))
	}
	return points
}

func randomPoint(r *rand.Rand, key, label string, colMin, colMax, distMin, distMax int) TrendPoint {
	return TrendPoint{
		Key:           key,
		Label:         label,
		Collections:   decimal.NewFromInt(int64(colMin + r.Intn(colMax-colMin))),
		Distributions: decimal.NewFromInt(int64(distMin + r.Intn(distMax-distMin))),
	}
}

type BalancePoint struct {
	Key     string          `json:"key"`
	Label   string          `json:"label"`
	Balance decimal.Decimal `json:"balance"`
}

// RunningBalance: saldo kumulatif (collections − distributions) per bucket.
func RunningBalance(points []TrendPoint) []BalancePoint {
	out := make([]BalancePoint, 0, len(points))
	running := decimal.Zero
	for _, p := range points {
		running = running.Add(p.Collections).Sub(p.Distributions)
		out = append(out, BalancePoint{Key: p.Key, Label: p.Label, Balance: running})
	}
	return out
}
