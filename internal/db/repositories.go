package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Cycles   *CycleRepository
	Profiles *ProfileRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Cycles:   NewCycleRepository(database),
		Profiles: NewProfileRepository(database),
	}
}
