package handlers

import (
	"net/http"

	"github.com/apraveen001/Travel-Agency-System/internal/database"
	"github.com/apraveen001/Travel-Agency-System/internal/models"
	"github.com/apraveen001/Travel-Agency-System/internal/services"
	"github.com/gin-gonic/gin"
)

// TravelGroupHandler serves travel groups and their members
type TravelGroupHandler struct {
	*ResourceHandler[models.TravelGroup, models.CreateTravelGroupRequest, models.UpdateTravelGroupRequest]
	repo *database.TravelGroupRepository
}

// NewTravelGroupHandler creates a new travel group handler
func NewTravelGroupHandler(repo *database.TravelGroupRepository, audit *services.AuditService) *TravelGroupHandler {
	return &TravelGroupHandler{
		ResourceHandler: &ResourceHandler[models.TravelGroup, models.CreateTravelGroupRequest, models.UpdateTravelGroupRequest]{
			entity: "travel group",
			idOf:   func(g *models.TravelGroup) int64 { return g.ID },
			list:   repo.List,
			get:    repo.GetByID,
			create: func(req *models.CreateTravelGroupRequest) (*models.TravelGroup, error) {
				if err := req.Validate(); err != nil {
					return nil, invalid(err)
				}
				return repo.Create(req)
			},
			update: func(id int64, req *models.UpdateTravelGroupRequest) error {
				if err := req.Validate(); err != nil {
					return invalid(err)
				}
				return repo.Update(id, req)
			},
			remove: repo.Delete,
			audit:  newAuditor(audit),
		},
		repo: repo,
	}
}

// Register mounts group CRUD and member routes
func (h *TravelGroupHandler) Register(rg *gin.RouterGroup, deleteGuards ...gin.HandlerFunc) {
	h.ResourceHandler.Register(rg, deleteGuards...)
	rg.GET("/:id/members", h.ListMembers)
	rg.POST("/:id/members", h.AddMember)
	rg.DELETE("/:id/members/:passenger_id", h.RemoveMember)
}

// ListMembers handles GET /travel-groups/:id/members
func (h *TravelGroupHandler) ListMembers(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if _, err := h.repo.GetByID(groupID); err != nil {
		respondError(c, err, "travel group")
		return
	}

	members, err := h.repo.ListMembers(groupID)
	if err != nil {
		respondError(c, err, "travel group")
		return
	}

	c.JSON(http.StatusOK, members)
}

// AddMember handles POST /travel-groups/:id/members
func (h *TravelGroupHandler) AddMember(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req models.AddGroupMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.repo.GetByID(groupID); err != nil {
		respondError(c, err, "travel group")
		return
	}

	if err := h.repo.AddMember(groupID, req.PassengerID); err != nil {
		respondError(c, err, "passenger")
		return
	}

	h.audit.record(c, "add_member", "travel_group", groupID, map[string]interface{}{"passenger_id": req.PassengerID})
	c.JSON(http.StatusCreated, gin.H{"message": "Member added", "group_id": groupID, "passenger_id": req.PassengerID})
}

// RemoveMember handles DELETE /travel-groups/:id/members/:passenger_id
func (h *TravelGroupHandler) RemoveMember(c *gin.Context) {
	groupID, ok := paramID(c, "id")
	if !ok {
		return
	}
	passengerID, ok := paramID(c, "passenger_id")
	if !ok {
		return
	}

	if err := h.repo.RemoveMember(groupID, passengerID); err != nil {
		respondError(c, err, "group member")
		return
	}

	h.audit.record(c, "remove_member", "travel_group", groupID, map[string]interface{}{"passenger_id": passengerID})
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
