package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"school-gate/app/models"
)

func TestImportStudentsContract(t *testing.T) {
	db := openTestDB(t)

	rows := []*models.Student{
		{Name: "Ali", Grade: "5", ClassName: "A", IDNumber: "1000", MobileNumber: "0500000000"},
		{Name: "", Grade: "5", ClassName: "A", IDNumber: "1001"},   // missing name
		{Name: "Omar", Grade: "6", ClassName: "B", IDNumber: ""},   // missing id_number
		{Name: "Sara", Grade: "4", ClassName: "C", IDNumber: "1002"},
		{Name: "Ali Again", Grade: "5", ClassName: "A", IDNumber: "1000"}, // duplicate
	}

	result, err := ImportStudents(db, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 3, result.Skipped)

	all, err := GetAllStudents(db)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSearchStudentsFilters(t *testing.T) {
	db := openTestDB(t)

	for _, s := range []*models.Student{
		{Name: "Ali", Grade: "5", ClassName: "A", IDNumber: "1000", MobileNumber: "0501"},
		{Name: "Omar", Grade: "5", ClassName: "B", IDNumber: "1001", MobileNumber: "0502"},
		{Name: "Sara", Grade: "6", ClassName: "A", IDNumber: "1002", MobileNumber: "0503"},
	} {
		require.NoError(t, CreateStudent(db, s))
	}

	byGrade, err := SearchStudents(db, models.StudentFilters{Grade: "5"})
	require.NoError(t, err)
	assert.Len(t, byGrade, 2)

	narrowed, err := SearchStudents(db, models.StudentFilters{Grade: "5", ClassName: "B"})
	require.NoError(t, err)
	require.Len(t, narrowed, 1)
	assert.Equal(t, "Omar", narrowed[0].Name)

	none, err := SearchStudents(db, models.StudentFilters{Grade: "7"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateStudentDuplicateIDNumber(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, CreateStudent(db, &models.Student{
		Name: "Ali", Grade: "5", ClassName: "A", IDNumber: "1000", MobileNumber: "0500000000",
	}))
	err := CreateStudent(db, &models.Student{
		Name: "Other", Grade: "6", ClassName: "B", IDNumber: "1000", MobileNumber: "0500000001",
	})
	assert.Error(t, err, "id_number is a unique business key")
}
