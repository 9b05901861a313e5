package stats

import (
	"github.com/okian/bikeshare/internal/domain/model"
	"github.com/okian/bikeshare/internal/domain/types"
)

// UserReport holds user demographics. Gender and birth year figures are only
// meaningful when the matching Available flag is set.
type UserReport struct {
	UserTypes []types.Count

	GenderAvailable bool
	Genders         []types.Count

	BirthYearAvailable bool
	EarliestYear       int
	LatestYear         int
	CommonYear         int
	CommonYearCount    int
}

// Users counts user types, genders and birth years. Blank cells are left out
// of every count.
func Users(table *model.Table) (UserReport, error) {
	if table.Len() == 0 {
		return UserReport{}, ErrEmptyDataset
	}

	schema := table.Schema()
	userTypes := make(map[string]int)
	genders := make(map[string]int)
	years := make(map[int]int)
	var earliest, latest int

	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		if row.UserType != "" {
			userTypes[row.UserType]++
		}
		if row.Gender != "" {
			genders[row.Gender]++
		}
		if !row.HasBirthYear() {
			continue
		}
		y := row.BirthYear
		if len(years) == 0 || y < earliest {
			earliest = y
		}
		if len(years) == 0 || y > latest {
			latest = y
		}
		years[y]++
	}

	r := UserReport{UserTypes: types.FromMap(userTypes)}
	if schema.HasGender() {
		r.GenderAvailable = true
		r.Genders = types.FromMap(genders)
	}
	if schema.HasBirthYear() && len(years) > 0 {
		r.BirthYearAvailable = true
		r.EarliestYear = earliest
		r.LatestYear = latest
		r.CommonYear, r.CommonYearCount = mode(years)
	}
	return r, nil
}
