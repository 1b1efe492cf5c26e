package http

import (
	"github.com/gin-gonic/gin"
)

// POST /v1/homes
func (s *Server) createHome(c *gin.Context) {
	var input struct {
		Name    string `json:"name" binding:"required"`
		Address string `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	home, err := s.homes.CreateHome(c.Request.Context(), currentUserID(c), input.Name, input.Address)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(201, gin.H{"success": true, "home": home})
}

// POST /v1/homes/join
func (s *Server) joinHome(c *gin.Context) {
	var input struct {
		JoinCode string `json:"join_code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	home, err := s.homes.JoinHome(c.Request.Context(), currentUserID(c), input.JoinCode)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true, "home": home})
}

// POST /v1/homes/leave
func (s *Server) leaveHome(c *gin.Context) {
	if err := s.homes.LeaveHome(c.Request.Context(), currentUserID(c)); err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"success": true})
}

// GET /v1/homes/members
func (s *Server) listHomeMembers(c *gin.Context) {
	home, err := s.homes.HomeForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		serviceError(c, err)
		return
	}

	members, err := s.homes.ListMembers(c.Request.Context(), home.ID)
	if err != nil {
		serviceError(c, err)
		return
	}

	c.JSON(200, gin.H{"home": home, "members": members})
}
