package domain

import "time"

type User struct {
	ID        int64 // telegram user id
	Username  string
	IsAdmin   bool
	CreatedAt time.Time

	Company *Company // nil until the user creates one
}

func (u User) HasCompany() bool { return u.Company != nil }

type Company struct {
	ID        int64
	Name      string
	UserID    int64
	CreatedAt time.Time
}

type MonthlyData struct {
	ID        int64
	CompanyID int64
	Year      int
	Month     Month
	Income    int64
	Expenses  int64
	Profit    int64
	KPN       int64
	CreatedAt time.Time
}

// Point is one bar of a chart: the value of a field in a given month.
type Point struct {
	Value int64
	Month Month
}
