package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Nikkoola22/ATLAS/core"
	"github.com/Nikkoola22/ATLAS/search"
)

const (
	msgInvalidJSON     = "JSON invalide"
	msgMissingQuestion = "Paramètre question manquant"
	msgMissingMessages = "Paramètre messages manquant"
	msgNoCompletion    = "Service de complétion non configuré"
	msgInvalidHistory  = "Historique invalide"
)

type chatRequest struct {
	Question string         `json:"question"`
	History  []core.Message `json:"history"`
}

type chatResponse struct {
	Answer             string   `json:"answer"`
	SectionIDs         []string `json:"sectionIds"`
	UsedReducedContext bool     `json:"usedReducedContext"`
}

type questionRequest struct {
	Question string `json:"question"`
}

type locateResponse struct {
	SectionIDs []string `json:"sectionIds"`
}

type rankedChapter struct {
	ChapterID int    `json:"chapterId"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Score     int    `json:"score"`
}

type scoreResponse struct {
	Answer  string          `json:"answer"`
	Ranking []rankedChapter `json:"ranking"`
}

type completionRequest struct {
	Messages []core.Message `json:"messages"`
}

type completionChoice struct {
	Index   int          `json:"index"`
	Message core.Message `json:"message"`
}

type completionResponse struct {
	Choices []completionChoice `json:"choices"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (s *Server) chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{msgInvalidJSON})
	}
	if strings.TrimSpace(req.Question) == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{msgMissingQuestion})
	}
	for _, msg := range req.History {
		if err := core.ValidateMessage(msg); err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{msgInvalidHistory + ": " + err.Error()})
		}
	}
	if s.engine.Completer() == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{msgNoCompletion})
	}

	result, err := s.engine.UnifiedSearch(c.Request().Context(), req.Question, req.History)
	if err != nil {
		s.logger.Error("error answering question", "err", err,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusBadGateway, errorResponse{search.GenericErrorAnswer})
	}
	ids := result.SectionIDs
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, chatResponse{
		Answer:             search.WithContact(result.Answer),
		SectionIDs:         ids,
		UsedReducedContext: result.UsedReducedContext,
	})
}

func (s *Server) locate(c echo.Context) error {
	question, ok, err := s.bindQuestion(c)
	if !ok {
		return err
	}
	if s.engine.Completer() == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{msgNoCompletion})
	}
	return c.JSON(http.StatusOK, locateResponse{SectionIDs: s.engine.LocateSections(c.Request().Context(), question)})
}

func (s *Server) score(c echo.Context) error {
	question, ok, err := s.bindQuestion(c)
	if !ok {
		return err
	}
	ranked := s.engine.Rank(question)
	ranking := make([]rankedChapter, len(ranked))
	for i, r := range ranked {
		ranking[i] = rankedChapter{
			ChapterID: r.ChapterID,
			Title:     r.Title,
			Source:    string(r.Source),
			Score:     r.Score,
		}
	}
	return c.JSON(http.StatusOK, scoreResponse{
		Answer:  s.engine.ScoreAndRetrieveSingleChapter(question),
		Ranking: ranking,
	})
}

// completions forwards raw messages to the completion service, for clients
// that build their own prompts.
func (s *Server) completions(c echo.Context) error {
	var req completionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{msgInvalidJSON})
	}
	if len(req.Messages) == 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{msgMissingMessages})
	}
	completer := s.engine.Completer()
	if completer == nil {
		return c.JSON(http.StatusServiceUnavailable, errorResponse{msgNoCompletion})
	}

	reply, err := completer.Complete(c.Request().Context(), req.Messages)
	if err != nil {
		s.logger.Error("error forwarding completion", "err", err)
		return c.JSON(http.StatusBadGateway, errorResponse{err.Error()})
	}
	return c.JSON(http.StatusOK, completionResponse{
		Choices: []completionChoice{{Message: core.Message{Role: core.RoleAssistant, Content: reply}}},
	})
}

// bindQuestion writes a 400 response and returns ok == false when the body
// carries no question.
func (s *Server) bindQuestion(c echo.Context) (string, bool, error) {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return "", false, c.JSON(http.StatusBadRequest, errorResponse{msgInvalidJSON})
	}
	if strings.TrimSpace(req.Question) == "" {
		return "", false, c.JSON(http.StatusBadRequest, errorResponse{msgMissingQuestion})
	}
	return req.Question, true, nil
}
