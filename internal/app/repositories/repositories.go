package repositories

import (
	"github.com/yigit/studentregistry/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.Database) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(database),
	}
}
