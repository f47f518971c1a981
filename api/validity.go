package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitmark-inc/immunity-api/store"
	"github.com/bitmark-inc/immunity-api/utils"
	"github.com/bitmark-inc/immunity-api/validity"
)

func parsePersonID(c *gin.Context) (uuid.UUID, bool) {
	personID, err := uuid.Parse(c.Param("personID"))
	if err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidPersonID, err)
		return uuid.Nil, false
	}
	return personID, true
}

// compute runs the evaluator and writes the error response if it fails
func (s *Server) compute(c *gin.Context, scope validity.Scope) (*validity.Result, bool) {
	start := time.Now()
	result, err := s.evaluator.Compute(c.Request.Context(), scope)
	s.metrics.ObserveCompute(scope, start, result, err)

	switch {
	case err == nil:
		return result, true
	case errors.Is(err, store.ErrPersonNotFound):
		abortWithEncoding(c, http.StatusNotFound, errorPersonNotFound)
	case errors.Is(err, validity.ErrInputUnavailable):
		log.WithField("scope", scope.String()).Error(err)
		abortWithEncoding(c, http.StatusServiceUnavailable, errorValidityInputUnavailable, err)
	default:
		shouldInterupt(err, c)
	}
	return nil, false
}

func (s *Server) personValidity(c *gin.Context) {
	personID, ok := parsePersonID(c)
	if !ok {
		return
	}

	result, ok := s.compute(c, validity.SinglePerson(personID))
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"person_id": personID,
		"ranges":    result.Ranges,
		"issues":    result.Issues,
	})
}

func (s *Server) allValidity(c *gin.Context) {
	result, ok := s.compute(c, validity.AllPersons())
	if !ok {
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) personValiditySnapshot(c *gin.Context) {
	personID, ok := parsePersonID(c)
	if !ok {
		return
	}

	snapshots, err := s.mongoStore.GetPersonValidity(personID)
	if err == store.ErrSnapshotNotFound {
		abortWithEncoding(c, http.StatusNotFound, errorSnapshotNotFound)
		return
	} else if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"person_id":   personID,
		"computed_at": snapshots[0].ComputedAt,
		"ranges":      snapshots,
	})
}

func (s *Server) refreshPersonValidity(c *gin.Context) {
	personID, ok := parsePersonID(c)
	if !ok {
		return
	}

	if err := utils.TriggerPersonValidityRefresh(s.cadenceClient, c.Request.Context(), personID); err != nil {
		log.WithField("person_id", personID).Error(err)
		abortWithEncoding(c, http.StatusInternalServerError, errorValidityRefresh, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"result": "OK"})
}
