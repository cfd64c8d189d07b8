package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	mosqueModel "zakatconnect_backend/internals/features/mosques/mosques/model"
	collectionModel "zakatconnect_backend/internals/features/zakat/collections/model"
	distributionModel "zakatconnect_backend/internals/features/zakat/distributions/model"
	productTypeModel "zakatconnect_backend/internals/features/zakat/product_types/model"
	"zakatconnect_backend/internals/features/zakat/reports/service"
	helpersAuth "zakatconnect_backend/internals/helpers/auth"
	"zakatconnect_backend/internals/helpers/dbtime"
)

type Filter struct {
	Scope helpersAuth.Scope
	Range dbtime.DateRange
}

// Dataset: semua input laporan, sudah dinormalisasi (nama masjid/produk terisi).
type Dataset struct {
	Mosques       []service.MosqueRef
	Products      []service.ProductPrice
	Collections   []service.CollectionRecord
	Distributions []service.DistributionRecord
	Prices        service.PriceLookup

	// Degraded: sumber yang gagal dibaca (diperlakukan kosong).
	Degraded []string
}

type Repository struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func New(db *gorm.DB, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{DB: db, Log: log.Named("reports.repo")}
}

// Load membaca empat tabel paralel. Error baca tidak menggagalkan laporan:
// sumber yang gagal dicatat di Degraded dan dianggap kosong.
func (r *Repository) Load(ctx context.Context, f Filter) Dataset {
	var (
		mosques  []mosqueModel.MosqueModel
		products []productTypeModel.ProductTypeModel
		cols     []collectionModel.CollectionModel
		dists    []distributionModel.DistributionModel
	)
	failed := make([]bool, 4)

	g, gctx := errgroup.WithContext(ctx)
	read := func(i int, name string, fn func(db *gorm.DB) error) {
		g.Go(func() error {
			start := time.Now()
			if err := fn(r.DB.WithContext(gctx)); err != nil {
				failed[i] = true
				r.Log.Warn("⚠️ baca data laporan gagal, dianggap kosong", zap.String("source", name), zap.Error(err))
				return nil
			}
			r.Log.Debug("report source loaded", zap.String("source", name), zap.Duration("took", time.Since(start)))
			return nil
		})
	}

	read(0, "mosques", func(db *gorm.DB) error {
		return f.Scope.Apply(db.Model(&mosqueModel.MosqueModel{}), "id").
			Select("id", "name").Order("name ASC").Find(&mosques).Error
	})
	read(1, "product_types", func(db *gorm.DB) error {
		return db.Select("id", "name", "price").Find(&products).Error
	})
	read(2, "zakat_collections", func(db *gorm.DB) error {
		q := f.Scope.Apply(db.Model(&collectionModel.CollectionModel{}), "mosque_id")
		q = applyRange(q, "collection_date", f.Range)
		return q.Order("collection_date ASC").Find(&cols).Error
	})
	read(3, "zakat_distributions", func(db *gorm.DB) error {
		q := f.Scope.Apply(db.Model(&distributionModel.DistributionModel{}), "mosque_id")
		q = applyRange(q, "distribution_date", f.Range)
		return q.Order("distribution_date ASC").Find(&dists).Error
	})
	_ = g.Wait()

	ds := normalize(mosques, products, cols, dists)
	for i, name := range []string{"mosques", "product_types", "zakat_collections", "zakat_distributions"} {
		if failed[i] {
			ds.Degraded = append(ds.Degraded, name)
		}
	}
	return ds
}

func applyRange(q *gorm.DB, column string, rng dbtime.DateRange) *gorm.DB {
	if !rng.From.IsZero() {
		q = q.Where(column+" >= ?", rng.From)
	}
	if !rng.To.IsZero() {
		q = q.Where(column+" <= ?", rng.To)
	}
	return q
}

func normalize(
	mosques []mosqueModel.MosqueModel,
	products []productTypeModel.ProductTypeModel,
	cols []collectionModel.CollectionModel,
	dists []distributionModel.DistributionModel,
) Dataset {
	ds := Dataset{
		Mosques:       make([]service.MosqueRef, 0, len(mosques)),
		Products:      make([]service.ProductPrice, 0, len(products)),
		Collections:   make([]service.CollectionRecord, 0, len(cols)),
		Distributions: make([]service.DistributionRecord, 0, len(dists)),
	}

	mosqueNames := make(map[uuid.UUID]string, len(mosques))
	for _, m := range mosques {
		mosqueNames[m.ID] = m.Name
		ds.Mosques = append(ds.Mosques, service.MosqueRef{ID: m.ID, Name: m.Name})
	}
	productNames := make(map[uuid.UUID]string, len(products))
	for _, p := range products {
		productNames[p.ID] = p.Name
		ds.Products = append(ds.Products, service.ProductPrice{ID: p.ID, Name: p.Name, Price: p.Price})
	}
	ds.Prices = service.NewPriceLookup(ds.Products)

	for _, c := range cols {
		rec := service.CollectionRecordFrom(c)
		rec.MosqueName = mosqueNames[c.MosqueID]
		if c.ProductTypeID != nil {
			rec.ProductName = productNames[*c.ProductTypeID]
		}
		ds.Collections = append(ds.Collections, rec)
	}
	for _, d := range dists {
		rec := service.DistributionRecordFrom(d)
		rec.MosqueName = mosqueNames[d.MosqueID]
		ds.Distributions = append(ds.Distributions, rec)
	}
	return ds
}
