package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	businessdomain "github.com/invobook/invobook/internal/business/domain"
)

func (s *Server) GetBusiness(c *gin.Context) {
	resp, err := s.businessSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateBusiness(c *gin.Context) {
	var req businessdomain.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.businessSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
