package constants

const (
	ListPageSize = 10 // bounded page for fresh folder listings
)
