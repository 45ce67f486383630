package adapter

import (
	"fmt"
	"time"

	"github.com/akolanti/GovStackAPI/internal/api"
	"github.com/akolanti/GovStackAPI/internal/chat"
	"github.com/akolanti/GovStackAPI/internal/domain/chatModel"
	"github.com/akolanti/GovStackAPI/internal/domain/jobModel"
	"github.com/akolanti/GovStackAPI/internal/domain/recordModel"
)

func ToInitJobResponse(id string) api.InitJobResponse {
	return api.InitJobResponse{
		Id:        id,
		StatusURL: fmt.Sprintf("status/%s", id),
	}
}

func ToAPIResponse(job jobModel.Job) api.JobResponse {

	var errorPtr *api.JobOutgoingError
	if job.Error.Message != "" || job.Error.Code != 0 {
		errorPtr = &api.JobOutgoingError{
			Code:    job.Error.Code,
			Message: job.Error.Message,
			Retry:   job.Error.Retry,
		}
	}

	result := api.Result{
		Status:   string(job.Status),
		IndexRun: job.JobPayload.Run,
	}

	return api.JobResponse{
		Id:        job.Id,
		StartTime: job.CreatedTime,
		EndTime:   job.EndTime,
		Error:     errorPtr,
		Result:    result,
	}
}

func ToChatResponse(turn chat.Turn, traceId string) api.ChatResponse {
	return api.ChatResponse{
		SessionID:     turn.SessionID,
		Answer:        turn.Output.Answer,
		Sources:       turn.Output.Sources,
		Confidence:    turn.Output.Confidence,
		RetrieverType: turn.Output.RetrieverType,
		TraceID:       traceId,
	}
}

func ToChatHistoryResponse(sessionID string, messages []chatModel.Message) api.ChatHistoryResponse {
	out := make([]api.ChatHistoryMessage, 0, len(messages))
	for _, m := range messages {
		out = append(out, api.ChatHistoryMessage{
			Kind:      string(m.Kind),
			Text:      m.Content.Text,
			Sources:   m.Content.Sources,
			Timestamp: m.Timestamp,
		})
	}
	return api.ChatHistoryResponse{
		SessionID:   sessionID,
		Messages:    out,
		NumMessages: len(out),
	}
}

func ToCollectionStatsResponse(stats recordModel.CollectionStats) api.CollectionStatsResponse {
	return api.CollectionStatsResponse{
		CollectionID:    stats.CollectionID,
		WebpageCount:    stats.WebpageCount,
		TotalCharacters: stats.TotalCharacters,
		EarliestCrawl:   stats.EarliestCrawl,
		LatestCrawl:     stats.LatestCrawl,
	}
}

func BadRequest(id string, error string, code int) api.JobResponse {
	return api.JobResponse{
		Id:        id,
		StartTime: time.Time{},
		EndTime:   time.Time{},
		Result: api.Result{
			Status: string(api.JobStatusError),
		},
		Error: &api.JobOutgoingError{
			Code:    code,
			Message: error,
			Retry:   false,
		},
	}
}
