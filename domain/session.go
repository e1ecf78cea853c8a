package domain

// Session identifies a guest for the lifetime of their cookie.
type Session struct {
	Id   string
	Name string
}
