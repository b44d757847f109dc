package billing_test

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	appbilling "github.com/jhoicas/servicampo-billing/internal/application/billing"
	"github.com/jhoicas/servicampo-billing/internal/domain/entity"
	"github.com/jhoicas/servicampo-billing/internal/domain/repository"
	"github.com/jhoicas/servicampo-billing/pkg/logger"
)

// Fakes en memoria para los puertos. Los Get devuelven copias, igual que un
// store real: mutar lo devuelto no toca lo "persistido".

var errForzado = errors.New("falla forzada")

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

// ── documentos ────────────────────────────────────────────────────────────────

type memDocRepo struct {
	docs      map[string]*entity.Document
	failOn    string // nombre del método que debe fallar ("Create", "Update")
	createSeq []string
}

func newMemDocRepo(docs ...*entity.Document) *memDocRepo {
	r := &memDocRepo{docs: make(map[string]*entity.Document)}
	for _, d := range docs {
		r.docs[d.ID] = copyDoc(d)
		r.createSeq = append(r.createSeq, d.ID)
	}
	return r
}

func copyDoc(d *entity.Document) *entity.Document {
	c := *d
	c.Items = make([]entity.LineItem, len(d.Items))
	copy(c.Items, d.Items)
	if d.Discount != nil {
		disc := *d.Discount
		c.Discount = &disc
	}
	return &c
}

func (r *memDocRepo) Create(doc *entity.Document) error {
	if r.failOn == "Create" {
		return errForzado
	}
	r.docs[doc.ID] = copyDoc(doc)
	r.createSeq = append(r.createSeq, doc.ID)
	return nil
}

func (r *memDocRepo) Update(doc *entity.Document) error {
	if r.failOn == "Update" {
		return errForzado
	}
	r.docs[doc.ID] = copyDoc(doc)
	return nil
}

func (r *memDocRepo) GetByID(id string) (*entity.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return copyDoc(d), nil
}

func (r *memDocRepo) ListByKind(kind entity.DocumentKind) ([]*entity.Document, error) {
	var out []*entity.Document
	for _, id := range r.createSeq {
		if d, ok := r.docs[id]; ok && d.Kind == kind {
			out = append(out, copyDoc(d))
		}
	}
	return out, nil
}

// ── registros de conversión ───────────────────────────────────────────────────

type memConvRepo struct {
	recs   map[string]*entity.ConversionRecord
	failOn string
}

func newMemConvRepo() *memConvRepo {
	return &memConvRepo{recs: make(map[string]*entity.ConversionRecord)}
}

func (r *memConvRepo) Create(rec *entity.ConversionRecord) error {
	if r.failOn == "Create" {
		return errForzado
	}
	c := *rec
	r.recs[rec.SourceID] = &c
	return nil
}

func (r *memConvRepo) GetBySourceID(sourceID string) (*entity.ConversionRecord, error) {
	rec, ok := r.recs[sourceID]
	if !ok {
		return nil, nil
	}
	c := *rec
	return &c, nil
}

func (r *memConvRepo) LoadAll() (map[string]string, error) {
	out := make(map[string]string, len(r.recs))
	for src, rec := range r.recs {
		out[src] = rec.TargetID
	}
	return out, nil
}

// ── trabajos ──────────────────────────────────────────────────────────────────

type memJobRepo struct {
	jobs map[string]*entity.Job
}

func newMemJobRepo() *memJobRepo { return &memJobRepo{jobs: make(map[string]*entity.Job)} }

func (r *memJobRepo) Create(job *entity.Job) error {
	c := *job
	r.jobs[job.ID] = &c
	return nil
}

func (r *memJobRepo) GetByID(id string) (*entity.Job, error) {
	j, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	c := *j
	return &c, nil
}

// ── runner transaccional ──────────────────────────────────────────────────────

// memTxRunner emula la atomicidad: toma una instantánea de los tres stores y
// la restaura si fn falla, como haría el rollback de una transacción real.
type memTxRunner struct {
	docs *memDocRepo
	conv *memConvRepo
	jobs *memJobRepo
}

func (r *memTxRunner) RunConversion(ctx context.Context, fn func(
	docRepo repository.DocumentRepository,
	convRepo repository.ConversionRecordRepository,
	jobRepo repository.JobRepository,
) error) error {
	snapDocs := make(map[string]*entity.Document, len(r.docs.docs))
	for k, v := range r.docs.docs {
		snapDocs[k] = copyDoc(v)
	}
	snapRecs := make(map[string]*entity.ConversionRecord, len(r.conv.recs))
	for k, v := range r.conv.recs {
		c := *v
		snapRecs[k] = &c
	}
	snapJobs := make(map[string]*entity.Job, len(r.jobs.jobs))
	for k, v := range r.jobs.jobs {
		c := *v
		snapJobs[k] = &c
	}

	if err := fn(r.docs, r.conv, r.jobs); err != nil {
		r.docs.docs = snapDocs
		r.conv.recs = snapRecs
		r.jobs.jobs = snapJobs
		return err
	}
	return nil
}

// ── catálogo ──────────────────────────────────────────────────────────────────

type memCustomerRepo struct{ customers map[string]*entity.Customer }

func (r *memCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cc := *c
	return &cc, nil
}

type memEmployeeRepo struct{ employees map[string]*entity.Employee }

func (r *memEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	ee := *e
	return &ee, nil
}

type memItemRepo struct{ items map[string]*entity.CatalogItem }

func (r *memItemRepo) GetByID(id string) (*entity.CatalogItem, error) {
	it, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	c := *it
	return &c, nil
}

type memDiscountRepo struct{ discounts map[string]*entity.CatalogDiscount }

func (r *memDiscountRepo) GetByID(id string) (*entity.CatalogDiscount, error) {
	d, ok := r.discounts[id]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (r *memDiscountRepo) List() ([]*entity.CatalogDiscount, error) {
	out := make([]*entity.CatalogDiscount, 0, len(r.discounts))
	for _, d := range r.discounts {
		c := *d
		out = append(out, &c)
	}
	return out, nil
}

// ── pasarela de pagos ─────────────────────────────────────────────────────────

type fakeGateway struct {
	declined bool
	failWith error
	charged  []decimal.Decimal
}

func (g *fakeGateway) Charge(ctx context.Context, amount decimal.Decimal, method string) (appbilling.PaymentResult, error) {
	if g.failWith != nil {
		return appbilling.PaymentResult{}, g.failWith
	}
	g.charged = append(g.charged, amount)
	if g.declined {
		return appbilling.PaymentResult{Success: false}, nil
	}
	return appbilling.PaymentResult{Success: true, Reference: "PAGO-001"}, nil
}
