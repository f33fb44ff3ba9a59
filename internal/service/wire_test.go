package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/expenses/internal/models"
)

func TestRecordEntity(t *testing.T) {
	rec := &Record{
		Kind:     models.KindLineItem,
		ID:       id(7),
		Version:  id(2),
		Amount:   models.Float(3.25),
		ReportID: id(4),
	}

	e, err := rec.Entity()
	require.NoError(t, err)

	item, ok := e.(*models.LineItem)
	require.True(t, ok)
	assert.Equal(t, int64(7), *item.ID)
	assert.Equal(t, int64(2), *item.Version)
	assert.Nil(t, item.Currency)
	reportID, _ := models.IDOf(item.Report)
	assert.Equal(t, int64(4), reportID)
	assert.Nil(t, item.Report.Purpose, "references are identity-only")
}

func TestRecordEntityRejectsStrayFields(t *testing.T) {
	_, err := (&Record{Kind: models.KindPerson, Code: models.String("USD"), Amount: models.Float(1)}).Entity()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errInvalidRecord))
	assert.Contains(t, err.Error(), "code, amount")
}

func TestToRecordCycle(t *testing.T) {
	p := &models.Person{UserName: models.String("abc")}
	p.Envelope = models.Envelope{ID: id(1), Version: id(0)}
	p.Supervisor = p

	rec := ToRecord(p)
	assert.Equal(t, int64(1), *rec.SupervisorID)

	status := models.StatusDeclined
	report := &models.GroupReport{Reporter: p, Status: &status}
	out := ToRecord(report)
	assert.Equal(t, "declined", *out.Status)
	assert.Nil(t, out.ApprovedSupervisorID)
	assert.Nil(t, out.ID)
}
