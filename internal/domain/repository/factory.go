package repository

// Factory describes access to the domain repositories.
type Factory interface {
	Orders() OrderRepository
	Suborders() SuborderRepository
	Properties() PropertyRepository
}
