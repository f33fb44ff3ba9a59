package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/expenses/internal/models"
)

// errInvalidRecord marks a wire record that cannot become a store delta.
var errInvalidRecord = errors.New("invalid record")

// Record is the wire form of every variant. Relationships travel as ids,
// so a record graph with cycles encodes without recursion.
type Record struct {
	Kind    models.Kind `json:"kind" validate:"required,oneof=currency person report line_item"`
	ID      *int64      `json:"id,omitempty" validate:"omitempty,gt=0"`
	Version *int64      `json:"version,omitempty" validate:"omitempty,gte=0"`

	// currency
	Code *string `json:"code,omitempty" validate:"omitempty,min=1,max=8"`
	Name *string `json:"name,omitempty"`

	// person
	UserName     *string `json:"user_name,omitempty" validate:"omitempty,min=1,max=64"`
	DisplayName  *string `json:"display_name,omitempty"`
	SupervisorID *int64  `json:"supervisor_id,omitempty" validate:"omitempty,gt=0"`

	// report
	Created              *time.Time `json:"created,omitempty"`
	ReporterID           *int64     `json:"reporter_id,omitempty" validate:"omitempty,gt=0"`
	ApprovedSupervisorID *int64     `json:"approved_supervisor_id,omitempty" validate:"omitempty,gt=0"`
	Status               *string    `json:"status,omitempty" validate:"omitempty,oneof=draft submitted approved declined paid"`

	// report and line item
	Purpose *string `json:"purpose,omitempty"`

	// line item
	Amount     *float64   `json:"amount,omitempty"`
	CurrencyID *int64     `json:"currency_id,omitempty" validate:"omitempty,gt=0"`
	Incurred   *time.Time `json:"incurred,omitempty"`
	ReportID   *int64     `json:"report_id,omitempty" validate:"omitempty,gt=0"`
}

// ToRecord encodes a store record for the wire.
func ToRecord(e models.Entity) *Record {
	return models.Visit[*Record](e, encoder{})
}

// ToRecords encodes a slice of store records.
func ToRecords(entities []models.Entity) []*Record {
	out := make([]*Record, len(entities))
	for i, e := range entities {
		out[i] = ToRecord(e)
	}
	return out
}

// Entity decodes the record into a store delta. Relationships become
// identity-only references; fields of other variants are rejected.
func (r *Record) Entity() (models.Entity, error) {
	e, err := models.New(r.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidRecord, err)
	}
	if err := models.Visit[error](e, decoder{r}); err != nil {
		return nil, err
	}
	return e, nil
}

// fields lists the names of the variant fields set on r.
func (r *Record) fields() []string {
	var names []string
	add := func(name string, set bool) {
		if set {
			names = append(names, name)
		}
	}
	add("code", r.Code != nil)
	add("name", r.Name != nil)
	add("user_name", r.UserName != nil)
	add("display_name", r.DisplayName != nil)
	add("supervisor_id", r.SupervisorID != nil)
	add("created", r.Created != nil)
	add("reporter_id", r.ReporterID != nil)
	add("approved_supervisor_id", r.ApprovedSupervisorID != nil)
	add("status", r.Status != nil)
	add("purpose", r.Purpose != nil)
	add("amount", r.Amount != nil)
	add("currency_id", r.CurrencyID != nil)
	add("incurred", r.Incurred != nil)
	add("report_id", r.ReportID != nil)
	return names
}

// only fails if r sets a variant field outside allowed.
func (r *Record) only(allowed ...string) error {
	var stray []string
	for _, name := range r.fields() {
		if !contains(allowed, name) {
			stray = append(stray, name)
		}
	}
	if len(stray) > 0 {
		return fmt.Errorf("%w: %s does not have %s", errInvalidRecord, r.Kind, strings.Join(stray, ", "))
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func envelopeOf(r *Record) models.Envelope {
	return models.Envelope{ID: r.ID, Version: r.Version}
}

type decoder struct {
	r *Record
}

func (d decoder) VisitCurrency(c *models.Currency) error {
	if err := d.r.only("code", "name"); err != nil {
		return err
	}
	c.Envelope = envelopeOf(d.r)
	c.Code = d.r.Code
	c.Name = d.r.Name
	return nil
}

func (d decoder) VisitPerson(p *models.Person) error {
	if err := d.r.only("user_name", "display_name", "supervisor_id"); err != nil {
		return err
	}
	p.Envelope = envelopeOf(d.r)
	p.UserName = d.r.UserName
	p.DisplayName = d.r.DisplayName
	if d.r.SupervisorID != nil {
		p.Supervisor = models.Ref[models.Person](*d.r.SupervisorID)
	}
	return nil
}

func (d decoder) VisitGroupReport(g *models.GroupReport) error {
	if err := d.r.only("created", "purpose", "reporter_id", "approved_supervisor_id", "status"); err != nil {
		return err
	}
	g.Envelope = envelopeOf(d.r)
	g.Created = d.r.Created
	g.Purpose = d.r.Purpose
	if d.r.ReporterID != nil {
		g.Reporter = models.Ref[models.Person](*d.r.ReporterID)
	}
	if d.r.ApprovedSupervisorID != nil {
		g.ApprovedSupervisor = models.Ref[models.Person](*d.r.ApprovedSupervisorID)
	}
	if d.r.Status != nil {
		status, err := models.ParseStatus(*d.r.Status)
		if err != nil {
			return fmt.Errorf("%w: %v", errInvalidRecord, err)
		}
		g.Status = &status
	}
	return nil
}

func (d decoder) VisitLineItem(li *models.LineItem) error {
	if err := d.r.only("amount", "currency_id", "incurred", "purpose", "report_id"); err != nil {
		return err
	}
	li.Envelope = envelopeOf(d.r)
	li.Amount = d.r.Amount
	li.Incurred = d.r.Incurred
	li.Purpose = d.r.Purpose
	if d.r.CurrencyID != nil {
		li.Currency = models.Ref[models.Currency](*d.r.CurrencyID)
	}
	if d.r.ReportID != nil {
		li.Report = models.Ref[models.GroupReport](*d.r.ReportID)
	}
	return nil
}

type encoder struct{}

func (encoder) VisitCurrency(c *models.Currency) *Record {
	return &Record{
		Kind:    models.KindCurrency,
		ID:      c.ID,
		Version: c.Version,
		Code:    c.Code,
		Name:    c.Name,
	}
}

func (encoder) VisitPerson(p *models.Person) *Record {
	return &Record{
		Kind:         models.KindPerson,
		ID:           p.ID,
		Version:      p.Version,
		UserName:     p.UserName,
		DisplayName:  p.DisplayName,
		SupervisorID: refID(p.Supervisor),
	}
}

func (encoder) VisitGroupReport(g *models.GroupReport) *Record {
	rec := &Record{
		Kind:                 models.KindReport,
		ID:                   g.ID,
		Version:              g.Version,
		Created:              g.Created,
		Purpose:              g.Purpose,
		ReporterID:           refID(g.Reporter),
		ApprovedSupervisorID: refID(g.ApprovedSupervisor),
	}
	if g.Status != nil {
		rec.Status = models.String(g.Status.String())
	}
	return rec
}

func (encoder) VisitLineItem(li *models.LineItem) *Record {
	return &Record{
		Kind:       models.KindLineItem,
		ID:         li.ID,
		Version:    li.Version,
		Amount:     li.Amount,
		CurrencyID: refID(li.Currency),
		Incurred:   li.Incurred,
		Purpose:    li.Purpose,
		ReportID:   refID(li.Report),
	}
}

func refID[T any, P interface {
	*T
	models.Entity
}](ref P) *int64 {
	if ref == nil {
		return nil
	}
	if id, ok := models.IDOf(ref); ok {
		return &id
	}
	return nil
}
