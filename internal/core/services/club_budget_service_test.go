package services

import (
	"context"
	"testing"

	"github.com/LEGENDANISH/UMS/internal/adapters/persistence/models"
	"github.com/LEGENDANISH/UMS/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordBudgetEntryValidation(t *testing.T) {
	svc, _ := newClubService(t)
	ctx := context.Background()

	club := createTestClub(t, svc, "Drama Society")

	_, err := svc.RecordBudgetEntry(ctx, &BudgetInput{
		ClubID: 999,
		Title:  "Props",
		Amount: 500,
		Type:   models.BudgetExpense,
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrClubNotFound)

	_, err = svc.RecordBudgetEntry(ctx, &BudgetInput{
		ClubID: club.ID,
		Title:  "Props",
		Amount: -10,
		Type:   models.BudgetExpense,
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RecordBudgetEntry(ctx, &BudgetInput{
		ClubID: club.ID,
		Title:  "Props",
		Amount: 500,
		Type:   "TRANSFER",
	}, adminIdentity(), "127.0.0.1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	entry, err := svc.RecordBudgetEntry(ctx, &BudgetInput{
		ClubID:   club.ID,
		Title:    "Stage props",
		Amount:   500,
		Type:     models.BudgetExpense,
		Category: "EQUIPMENT",
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, models.BudgetExpense, entry.Type)
	assert.False(t, entry.TransactionDate.IsZero())
}

func TestListBudgetEntriesFiltered(t *testing.T) {
	svc, _ := newClubService(t)
	ctx := context.Background()

	drama := createTestClub(t, svc, "Drama Society")
	chess := createTestClub(t, svc, "Chess Club")

	for _, input := range []BudgetInput{
		{ClubID: drama.ID, Title: "Ticket sales", Amount: 1200, Type: models.BudgetIncome},
		{ClubID: drama.ID, Title: "Costumes", Amount: 700, Type: models.BudgetExpense},
		{ClubID: chess.ID, Title: "Entry fees", Amount: 300, Type: models.BudgetIncome},
	} {
		entry := input
		_, err := svc.RecordBudgetEntry(ctx, &entry, adminIdentity(), "127.0.0.1")
		require.NoError(t, err)
	}

	all, total, err := svc.ListBudgetEntries(ctx, "", nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	income, total, err := svc.ListBudgetEntries(ctx, models.BudgetIncome, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, entry := range income {
		assert.Equal(t, models.BudgetIncome, entry.Type)
	}

	dramaOnly, total, err := svc.ListBudgetEntries(ctx, "", &drama.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, dramaOnly, 2)

	_, _, err = svc.ListBudgetEntries(ctx, "TRANSFER", nil, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListBudgetEntriesByClub(t *testing.T) {
	svc, _ := newClubService(t)
	ctx := context.Background()

	club := createTestClub(t, svc, "Photography Club")
	_, err := svc.RecordBudgetEntry(ctx, &BudgetInput{
		ClubID: club.ID,
		Title:  "Lens rental",
		Amount: 250,
		Type:   models.BudgetExpense,
	}, adminIdentity(), "127.0.0.1")
	require.NoError(t, err)

	ledger, err := svc.ListBudgetEntriesByClub(ctx, club.ID)
	require.NoError(t, err)
	assert.Len(t, ledger, 1)

	_, err = svc.ListBudgetEntriesByClub(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrClubNotFound)
}
