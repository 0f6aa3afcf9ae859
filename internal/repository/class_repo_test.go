package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qs3c/gym_go_server/internal/model"
	"github.com/qs3c/gym_go_server/internal/testutil"
)

func TestClassRepository_CreateWithDerived(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewClassRepository(db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)

	base := &model.ClassInstance{
		Name:         "Spinning",
		InstructorID: instructor.ID,
		LocationID:   location.ID,
		Date:         time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		StartTime:    "18:00",
		EndTime:      "19:00",
		Duration:     60,
		Capacity:     20,
		Difficulty:   model.DifficultyAll,
		Status:       model.ClassScheduled,
	}
	var derived []*model.ClassInstance
	for _, d := range []int{2, 4} {
		c := *base
		c.Date = base.Date.AddDate(0, 0, d)
		derived = append(derived, &c)
	}

	err := repo.CreateWithDerived(base, derived)
	require.NoError(t, err)
	assert.NotZero(t, base.ID)
	for _, c := range derived {
		assert.NotZero(t, c.ID)
	}

	var count int64
	require.NoError(t, db.Model(&model.ClassInstance{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}

func TestClassRepository_UpdateStatus_CancelledSticky(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewClassRepository(db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithStatus(model.ClassCancelled))

	// cancelled 不会被状态引擎的计算结果覆盖
	require.NoError(t, repo.UpdateStatus(class.ID, model.ClassInProgress))

	found, err := repo.GetByID(class.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClassCancelled, found.Status)
}

func TestClassRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewClassRepository(db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	class := testutil.TestClass(t, db, instructor.ID, location.ID)

	require.NoError(t, repo.UpdateStatus(class.ID, model.ClassFull))

	found, err := repo.GetByID(class.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClassFull, found.Status)
}

func TestClassRepository_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewClassRepository(db)
	i1 := testutil.TestInstructor(t, db)
	i2 := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)

	day1 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC)
	a := testutil.TestClass(t, db, i1.ID, location.ID, testutil.WithDate(day1))
	testutil.TestClass(t, db, i2.ID, location.ID, testutil.WithDate(day2))

	classes, total, err := repo.List(ClassFilter{Date: &day1}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, classes, 1)
	assert.Equal(t, a.ID, classes[0].ID)

	classes, total, err = repo.List(ClassFilter{InstructorID: i2.ID}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, classes, 1)
	assert.NotEqual(t, a.ID, classes[0].ID)
}

func TestClassRepository_CountByInstructor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewClassRepository(db)
	instructor := testutil.TestInstructor(t, db)
	location := testutil.TestLocation(t, db)
	testutil.TestClass(t, db, instructor.ID, location.ID)
	testutil.TestClass(t, db, instructor.ID, location.ID,
		testutil.WithDate(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	count, err := repo.CountByInstructor(instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountByInstructor(99999)
	require.NoError(t, err)
	assert.Zero(t, count)
}
