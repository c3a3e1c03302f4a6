package handlers

import (
	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
)

type (
	LocationHandler      = ResourceHandler[models.Location, models.CreateLocationRequest, models.UpdateLocationRequest]
	PassengerHandler     = ResourceHandler[models.Passenger, models.CreatePassengerRequest, models.UpdatePassengerRequest]
	EmployeeHandler      = ResourceHandler[models.Employee, models.CreateEmployeeRequest, models.UpdateEmployeeRequest]
	AccommodationHandler = ResourceHandler[models.Accommodation, models.CreateAccommodationRequest, models.UpdateAccommodationRequest]
	FlightHandler        = ResourceHandler[models.Flight, models.CreateFlightRequest, models.UpdateFlightRequest]
	CarRentalHandler     = ResourceHandler[models.CarRental, models.CreateCarRentalRequest, models.UpdateCarRentalRequest]
	CruiseHandler        = ResourceHandler[models.Cruise, models.CreateCruiseRequest, models.UpdateCruiseRequest]
	ActivityHandler      = ResourceHandler[models.Activity, models.CreateActivityRequest, models.UpdateActivityRequest]
)

// NewLocationHandler creates the location handler
func NewLocationHandler(repo *database.LocationRepository, audit *services.AuditService) *LocationHandler {
	return &LocationHandler{
		entity: "location",
		idOf:   func(l *models.Location) int64 { return l.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreateLocationRequest) (*models.Location, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdateLocationRequest) error {
			if err := req.Validate(); err != nil {
				return invalid(err)
			}
			return repo.Update(id, req)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}

// NewPassengerHandler creates the passenger handler
func NewPassengerHandler(repo *database.PassengerRepository, audit *services.AuditService) *PassengerHandler {
	return &PassengerHandler{
		entity: "passenger",
		idOf:   func(p *models.Passenger) int64 { return p.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreatePassengerRequest) (*models.Passenger, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdatePassengerRequest) error {
			if err := req.Validate(); err != nil {
				return invalid(err)
			}
			return repo.Update(id, req)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}

// NewEmployeeHandler creates the employee handler
func NewEmployeeHandler(repo *database.EmployeeRepository, audit *services.AuditService) *EmployeeHandler {
	return &EmployeeHandler{
		entity: "employee",
		idOf:   func(e *models.Employee) int64 { return e.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreateEmployeeRequest) (*models.Employee, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdateEmployeeRequest) error {
			if err := req.Validate(id); err != nil {
				return invalid(err)
			}
			return repo.Update(id, req)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}

// NewAccommodationHandler creates the accommodation handler
func NewAccommodationHandler(repo *database.AccommodationRepository, audit *services.AuditService) *AccommodationHandler {
	return &AccommodationHandler{
		entity: "accommodation",
		idOf:   func(a *models.Accommodation) int64 { return a.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreateAccommodationRequest) (*models.Accommodation, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdateAccommodationRequest) error {
			if err := req.Validate(); err != nil {
				return invalid(err)
			}
			return repo.Update(id, req)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}

// NewFlightHandler creates the flight handler. Updates are merged into the stored
// flight and checked as a whole.
func NewFlightHandler(repo *database.FlightRepository, audit *services.AuditService) *FlightHandler {
	return &FlightHandler{
		entity: "flight",
		idOf:   func(f *models.Flight) int64 { return f.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreateFlightRequest) (*models.Flight, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdateFlightRequest) error {
			stored, err := repo.GetByID(id)
			if err != nil {
				return err
			}
			merged := req.Apply(*stored)
			if err := merged.Validate(); err != nil {
				return invalid(err)
			}
			return repo.Save(&merged)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}

// NewCarRentalHandler creates the car rental handler
func NewCarRentalHandler(repo *database.CarRentalRepository, audit *services.AuditService) *CarRentalHandler {
	return &CarRentalHandler{
		entity: "car rental",
		idOf:   func(r *models.CarRental) int64 { return r.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreateCarRentalRequest) (*models.CarRental, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdateCarRentalRequest) error {
			stored, err := repo.GetByID(id)
			if err != nil {
				return err
			}
			merged := req.Apply(*stored)
			if err := merged.Validate(); err != nil {
				return invalid(err)
			}
			return repo.Save(&merged)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}

// NewCruiseHandler creates the cruise handler
func NewCruiseHandler(repo *database.CruiseRepository, audit *services.AuditService) *CruiseHandler {
	return &CruiseHandler{
		entity: "cruise",
		idOf:   func(c *models.Cruise) int64 { return c.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreateCruiseRequest) (*models.Cruise, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdateCruiseRequest) error {
			stored, err := repo.GetByID(id)
			if err != nil {
				return err
			}
			merged, err := req.Apply(*stored)
			if err != nil {
				return invalid(err)
			}
			return repo.Save(&merged)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}

// NewActivityHandler creates the activity handler
func NewActivityHandler(repo *database.ActivityRepository, audit *services.AuditService) *ActivityHandler {
	return &ActivityHandler{
		entity: "activity",
		idOf:   func(a *models.Activity) int64 { return a.ID },
		list:   repo.List,
		get:    repo.GetByID,
		create: func(req *models.CreateActivityRequest) (*models.Activity, error) {
			if err := req.Validate(); err != nil {
				return nil, invalid(err)
			}
			return repo.Create(req)
		},
		update: func(id int64, req *models.UpdateActivityRequest) error {
			if err := req.Validate(); err != nil {
				return invalid(err)
			}
			return repo.Update(id, req)
		},
		remove: repo.Delete,
		audit:  newAuditor(audit),
	}
}
