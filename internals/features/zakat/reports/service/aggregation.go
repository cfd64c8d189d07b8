package service

import (
	"github.com/shopspring/decimal"

	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
)

// Palette warna chart; dipakai round-robin berdasar urutan grup pertama kali muncul.
var Palette = []string{
	"#10B981", // emerald
	"#3B82F6", // blue
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#14B8A6", // teal
	"#F97316", // orange
}

const UnknownGroup = "Unknown"

var hundred = decimal.NewFromInt(100)

type Slice struct {
	Name       string          `json:"name"`
	Value      decimal.Decimal `json:"value"`
	Percentage int             `json:"percentage"`
	Color      string          `json:"color"`
}

func TotalCollected(collections []CollectionRecord, prices PriceLookup) decimal.Decimal {
	total := decimal.Zero
	for _, c := range collections {
		total = total.Add(ValueOf(c, prices))
	}
	return total
}

func TotalDistributed(distributions []DistributionRecord) decimal.Decimal {
	total := decimal.Zero
	for _, d := range distributions {
		total = total.Add(DistributionValue(d))
	}
	return total
}

// Balance boleh negatif (distribusi melebihi penerimaan).
func Balance(collected, distributed decimal.Decimal) decimal.Decimal {
	return collected.Sub(distributed)
}

// BreakdownByKey mengelompokkan records berdasar keyFn dan menjumlahkan valueFn.
// Urutan grup = urutan pertama kali muncul. Total nol → slice kosong.
func BreakdownByKey[T any](records []T, keyFn func(T) string, valueFn func(T) decimal.Decimal) []Slice {
	order := make([]string, 0)
	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero

	for _, r := range records {
		key := keyFn(r)
		if key == "" {
			key = UnknownGroup
		}
		v := valueFn(r)
		if _, seen := sums[key]; !seen {
			order = append(order, key)
			sums[key] = decimal.Zero
		}
		sums[key] = sums[key].Add(v)
		total = total.Add(v)
	}

	if total.IsZero() {
		return []Slice{}
	}

	out := make([]Slice, 0, len(order))
	for i, key := range order {
		v := sums[key]
		out = append(out, Slice{
			Name:       key,
			Value:      v,
			Percentage: Percentage(v, total),
			Color:      Palette[i%len(Palette)],
		})
	}
	return out
}

// Percentage = round(part/total × 100). total nol → 0.
func Percentage(part, total decimal.Decimal) int {
	if total.IsZero() {
		return 0
	}
	return int(part.Mul(hundred).Div(total).Round(0).IntPart())
}

/* ===============================
   Breakdown siap pakai
=================================*/

func CollectionsByType(collections []CollectionRecord, prices PriceLookup) []Slice {
	return BreakdownByKey(collections,
		func(c CollectionRecord) string { return c.Type },
		func(c CollectionRecord) decimal.Decimal { return ValueOf(c, prices) },
	)
}

// CollectionsByProduct: hanya in_kind, dikelompokkan per nama product type.
func CollectionsByProduct(collections []CollectionRecord, prices PriceLookup) []Slice {
	inKind := make([]CollectionRecord, 0, len(collections))
	for _, c := range collections {
		if c.Type == collectionModel.CollectionTypeInKind {
			inKind = append(inKind, c)
		}
	}
	return BreakdownByKey(inKind,
		func(c CollectionRecord) string { return c.ProductName },
		func(c CollectionRecord) decimal.Decimal { return ValueOf(c, prices) },
	)
}

func CollectedByMosque(collections []CollectionRecord, prices PriceLookup) []Slice {
	return BreakdownByKey(collections,
		func(c CollectionRecord) string { return c.MosqueName },
		func(c CollectionRecord) decimal.Decimal { return ValueOf(c, prices) },
	)
}

func DistributedByMosque(distributions []DistributionRecord) []Slice {
	return BreakdownByKey(distributions,
		func(d DistributionRecord) string { return d.MosqueName },
		DistributionValue,
	)
}

func DistributedByStatus(distributions []DistributionRecord) []Slice {
	return BreakdownByKey(distributions,
		func(d DistributionRecord) string { return distributionModel.NormalizeStatus(d.Status) },
		DistributionValue,
	)
}
