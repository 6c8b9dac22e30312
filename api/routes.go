package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	errorsmod "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	"github.com/Stride-Labs/st-scaling-factor/x/stscaling/types"
)

// maxQueryBodySize bounds raw query bodies
const maxQueryBodySize = 64 << 10

func (s *Server) registerRoutes() {
	v1 := s.router.Group("/stscaling/v1")
	{
		v1.GET("/config", s.handleConfig)
		v1.GET("/pools", s.handleAllPools)
		v1.GET("/pools/:pool_id", s.handlePool)
		v1.POST("/query", s.handleRawQuery)
	}
}

func (s *Server) handleConfig(c *gin.Context) {
	s.respond(c, types.QueryMsg{Config: &types.QueryConfigRequest{}})
}

func (s *Server) handleAllPools(c *gin.Context) {
	s.respond(c, types.QueryMsg{AllPools: &types.QueryAllPoolsRequest{}})
}

func (s *Server) handlePool(c *gin.Context) {
	poolID, err := strconv.ParseUint(c.Param("pool_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid pool id",
			Code:    CodeBadRequest,
			Details: err.Error(),
		})
		return
	}
	s.respond(c, types.QueryMsg{Pool: &types.QueryPoolRequest{PoolId: poolID}})
}

// handleRawQuery accepts a contract query message body such as {"all_pools":{}}
func (s *Server) handleRawQuery(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxQueryBodySize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Failed to read body", Code: CodeBadRequest})
		return
	}

	bz, err := s.querier.QueryJSON(c.Request.Context(), body)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", bz)
}

func (s *Server) respond(c *gin.Context, msg types.QueryMsg) {
	resp, err := s.querier.Query(c.Request.Context(), msg)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps module errors to HTTP status codes
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, types.ErrPoolNotFound), errors.Is(err, types.ErrConfigNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error(), Code: CodeNotFound})
	case errors.Is(err, types.ErrInvalidRequest), errors.Is(err, types.ErrInvalidPoolID):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeBadRequest})
	default:
		codespace, code, _ := errorsmod.ABCIInfo(err, false)
		s.logger.Error("query failed", "error", err, "codespace", codespace, "code", code)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error", Code: CodeInternalError})
	}
}
