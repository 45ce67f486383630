package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/akolanti/GovStackAPI/internal/adapter"
	"github.com/akolanti/GovStackAPI/internal/adapter/utils"
	"github.com/akolanti/GovStackAPI/internal/api"
	"github.com/akolanti/GovStackAPI/internal/config"
	"github.com/akolanti/GovStackAPI/internal/data/sqlstore"
	"github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/metrics"
	"github.com/akolanti/GovStackAPI/pkg/logger_i"
)

var logRH *logger_i.Logger

func GetHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// ChatHandler godoc
// @Summary      Chat with the assistant
// @Description  Answers a message with retrieval-grounded context. An empty session_id starts a new session; an unknown one is recovered.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      api.ChatRequest  true  "Message with optional session, user and collection ids"
// @Success      200      {object}  api.ChatResponse "Answer with sources and session id"
// @Failure      400      {object}  api.JobResponse  "Invalid request data"
// @Failure      502      {object}  api.JobResponse  "Agent failure"
// @Router       /chat [post]
func ChatHandler(w http.ResponseWriter, request *http.Request) {

	if !validateContext(request.Context()) {
		logRH.Warn("Invalid Context by request ", request.RemoteAddr)
		return
	}

	var requestData api.ChatRequest
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logRH.Error("Couldn't close the Chat handler reader :", "error", err)
		}
	}(request.Body)
	if err := json.NewDecoder(request.Body).Decode(&requestData); err != nil || requestData.Message == "" {
		logRH.Warn("Bad Chat Request: ", "error:", err)
		WriteErrorResponse(w, http.StatusBadRequest, requestData.SessionID, "Bad Request")
		return
	}

	traceId := request.Context().Value(config.TRACE_ID_KEY).(string)

	turn, err := handlerInstance.chat.Chat(request.Context(), requestData.SessionID, requestData.UserID, requestData.Message, requestData.CollectionID)
	if err != nil {
		logRH.Error("Chat turn failed", "error", err)
		metrics.CaptureChatTurn("error")
		WriteErrorResponse(w, http.StatusBadGateway, requestData.SessionID, "Chat processing failed")
		return
	}

	metrics.CaptureChatTurn("ok")
	writeJsonResponse(w, http.StatusOK, adapter.ToChatResponse(turn, traceId))
}

// GetChatHistoryHandler godoc
// @Summary      Get session history
// @Description  Returns the persisted transcript of a session, oldest first.
// @Tags         Chat
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200  {object}  api.ChatHistoryResponse
// @Failure      404  {object}  api.JobResponse "Session not found"
// @Router       /chat/{sessionId} [get]
func GetChatHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	sessionID := utils.GetChiURLParam(r, "sessionId")
	if _, err := handlerInstance.sessions.Get(r.Context(), sessionID); err != nil {
		if errors.Is(err, sqlstore.ErrSessionNotFound) {
			WriteErrorResponse(w, http.StatusNotFound, sessionID, "Session not found")
			return
		}
		WriteErrorResponse(w, http.StatusInternalServerError, sessionID, "Storage error")
		return
	}

	messages, err := handlerInstance.sessions.LoadMessages(r.Context(), sessionID)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, sessionID, "Storage error")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToChatHistoryResponse(sessionID, messages))
}

// DeleteChatHandler godoc
// @Summary      Delete a session
// @Description  Removes a session and its messages. Deleting an unknown session succeeds.
// @Tags         Chat
// @Produce      json
// @Param        sessionId  path      string  true  "Session ID"
// @Success      200  {object}  api.DeleteChatResponse
// @Router       /chat/{sessionId} [delete]
func DeleteChatHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	sessionID := utils.GetChiURLParam(r, "sessionId")
	found, err := handlerInstance.sessions.Delete(r.Context(), sessionID)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, sessionID, "Storage error")
		return
	}

	writeJsonResponse(w, http.StatusOK, api.DeleteChatResponse{SessionID: sessionID, Deleted: found})
}

// IndexCollectionHandler godoc
// @Summary      Start an indexing run
// @Description  Queues a background synchronizer pass over a collection and returns a job id to track it.
// @Tags         Indexing
// @Produce      json
// @Param        collectionID  path      string  true  "Collection ID"
// @Success      202  {object}  api.InitJobResponse "Job successfully created"
// @Router       /collections/{collectionID}/index [post]
func IndexCollectionHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	collectionID := utils.GetChiURLParam(r, "collectionID")
	if collectionID == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "collection id is required")
		return
	}

	newJob := newJobData{
		id:           utils.GetNewUUID(),
		jobType:      jobModel.JobTypeIndex,
		collectionID: collectionID,
		traceId:      r.Context().Value(config.TRACE_ID_KEY).(string),
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a background job using its ID.
// @Tags         Job Status
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse "The current status of the job"
// @Failure      404  {object}  api.JobResponse "Job not found"
// @Router       /status/{id} [get]
func GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	idString := utils.GetChiURLParam(r, "id")
	result, isFound := validateId(idString, r.Context().Value(config.TRACE_ID_KEY).(string))

	logRH.Debug("Get Status Request:", "URL path", r.URL.Path)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}

// GetStatsHandler godoc
// @Summary      Collection statistics
// @Description  Reports webpage count, character totals and crawl range for a collection.
// @Tags         Indexing
// @Produce      json
// @Param        collectionID  path      string  true  "Collection ID"
// @Success      200  {object}  api.CollectionStatsResponse
// @Router       /collections/{collectionID}/stats [get]
func GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	collectionID := utils.GetChiURLParam(r, "collectionID")
	stats, err := handlerInstance.records.CollectionStats(r.Context(), collectionID)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, collectionID, "Storage error")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToCollectionStatsResponse(stats))
}

// PostIngestHandler handles the uploading of PDF or DOCX documents.
// @Summary      Upload a document
// @Description  Receives a file via multipart/form-data, saves it to a temporary directory, and queues an ingestion job that deposits it as an unindexed source record.
// @Tags         Ingestion
// @Accept       multipart/form-data
// @Produce      json
// @Param        document_name  formData  string  true   "The display name of the document"
// @Param        collection_id  formData  string  false  "Target collection"
// @Param        document       formData  file    true   "The PDF or DOCX file to upload"
// @Success      202  {object}  api.InitJobResponse "Accepted - returns job id"
// @Failure      400  {object}  api.JobResponse "Bad Request - Missing fields or file too large"
// @Failure      500  {object}  api.JobResponse "Internal Server Error - Storage or Write Error"
// @Router       /ingest [post]
func PostIngestHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		logRH.Warn("Invalid Context by request ", r.RemoteAddr)
		return
	}

	targetDir, errString := getTargetDirectory()
	if errString != "" {
		logRH.Error("Couldn't get target directory :", "err", errString)
		WriteErrorResponse(w, http.StatusInternalServerError, "", errString)
		return
	}

	const maxUploadSize = 32 << 20 //32mb
	err := r.ParseMultipartForm(maxUploadSize)
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "", "File too large or bad request")
		return
	}

	docName := r.FormValue("document_name")
	if docName == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "document_name is required")
		return
	}

	fileReader, fileMetadata, err := r.FormFile("document")
	if err != nil {
		WriteErrorResponse(w, http.StatusBadRequest, docName, "Could not retrieve file")
		return
	}
	defer fileReader.Close()

	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), fileMetadata.Filename)
	tempFilePath := filepath.Join(targetDir, filename)
	destinationFileWriter, err := os.Create(tempFilePath)
	if err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Storage error")
		return
	}
	defer destinationFileWriter.Close()

	if _, err := io.Copy(destinationFileWriter, fileReader); err != nil {
		WriteErrorResponse(w, http.StatusInternalServerError, docName, "Write error")
		return
	}

	newJob := newJobData{
		id:             utils.GetNewUUID(),
		jobType:        jobModel.JobTypeIngest,
		collectionID:   r.FormValue("collection_id"),
		documentName:   fileMetadata.Filename,
		documentSource: tempFilePath,
		traceId:        r.Context().Value(config.TRACE_ID_KEY).(string),
	}
	CreateNewJob(newJob)
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.id))
}
