package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundrazor/fundrazor-backend/internal/requestdata"
	"github.com/fundrazor/fundrazor-backend/internal/services"
	"github.com/fundrazor/fundrazor-backend/internal/types"
)

type MeetingNoteHandler struct {
	meetingNoteService services.MeetingNoteService
}

func NewMeetingNoteHandler(meetingNoteService services.MeetingNoteService) *MeetingNoteHandler {
	return &MeetingNoteHandler{meetingNoteService: meetingNoteService}
}

func (mh *MeetingNoteHandler) Create(c *gin.Context) {
	var req types.MeetingNote
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	// The caller is the author unless one is given explicitly.
	if req.AuthorID == nil {
		if rd := requestdata.GetRequestData(c.Request.Context()); rd != nil && rd.UserID != uuid.Nil {
			authorID := rd.UserID
			req.AuthorID = &authorID
		}
	}
	created, err := mh.meetingNoteService.CreateMeetingNote(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (mh *MeetingNoteHandler) List(c *gin.Context) {
	personID, err := uuid.Parse(c.Query("person_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "person_id required"})
		return
	}
	notes, err := mh.meetingNoteService.ListMeetingNotes(c.Request.Context(), personID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (mh *MeetingNoteHandler) Delete(c *gin.Context) {
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid meeting note id"})
		return
	}
	if err := mh.meetingNoteService.DeleteMeetingNote(c.Request.Context(), noteID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
