package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shouni/go-coloring-kit/pkg/domain"
	"github.com/shouni/go-coloring-kit/pkg/publisher"
	"github.com/shouni/go-coloring-kit/pkg/workflow"
)

type tabRequest struct {
	Tab string `json:"tab"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type draftRequest struct {
	Name  string `json:"name"`
	Age   string `json:"age"`
	Theme string `json:"theme"`
}

type themesResponse struct {
	Themes []string            `json:"themes"`
	Ages   []domain.AgeBracket `json:"ages"`
}

func (s *Server) handleThemes(w http.ResponseWriter, _ *http.Request) {
	themes, err := domain.SuggestedThemes()
	if err != nil {
		slog.Error("Failed to load suggested themes", "error", err)
		respondWithError(w, http.StatusInternalServerError, "themes unavailable")
		return
	}
	respondWithJSON(w, http.StatusOK, themesResponse{Themes: themes, Ages: domain.AgeBrackets()})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	id, c := s.newSession()
	respondWithJSON(w, http.StatusCreated, sessionResponse{ID: id, State: c.State()})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	respondWithState(w, http.StatusOK, r, c)
}

func (s *Server) handleSelectTab(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	var req tabRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tab, err := workflow.ParseTab(req.Tab)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	c.Update(func(st workflow.State) workflow.State { return st.SelectTab(tab) })
	respondWithState(w, http.StatusOK, r, c)
}

func (s *Server) handleNewBook(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	c.Update(workflow.State.StartNewBook)
	respondWithState(w, http.StatusOK, r, c)
}

func (s *Server) handleSelectTheme(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	var req themeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.Update(func(st workflow.State) workflow.State { return st.SelectTheme(req.Theme) })
	respondWithState(w, http.StatusOK, r, c)
}

func (s *Server) handleUpdateDraft(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	var req draftRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	age := domain.DefaultAgeBracket
	if strings.TrimSpace(req.Age) != "" {
		parsed, err := domain.ParseAgeBracket(req.Age)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		age = parsed
	}

	draft := domain.Draft{Name: req.Name, Age: age, Theme: req.Theme}
	ok := c.TryUpdate(func(st workflow.State) (workflow.State, bool) {
		if st.Step != workflow.StepForm {
			return st, false
		}
		return st.UpdateDraft(draft), true
	})
	if !ok {
		respondWithError(w, http.StatusConflict, "draft can only be edited on the form step")
		return
	}
	respondWithState(w, http.StatusOK, r, c)
}

func (s *Server) handleDismissNotice(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	c.Update(workflow.State.DismissNotice)
	respondWithState(w, http.StatusOK, r, c)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	s.accept(w, r, c)(s.orchestrator.BeginGenerate(c))
}

func (s *Server) handleRegenerateCover(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	s.accept(w, r, c)(s.orchestrator.BeginRegenerateCover(c))
}

func (s *Server) handleRegenerateAll(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	s.accept(w, r, c)(s.orchestrator.BeginRegenerateAll(c))
}

func (s *Server) handleRegeneratePage(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	index, err := strconv.Atoi(chi.URLParam(r, paramPageIndex))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "page index must be an integer")
		return
	}
	s.accept(w, r, c)(s.orchestrator.BeginRegeneratePage(c, index))
}

// accept は Begin* の結果に応じて Job を起動し、202 か 409 を返す関数を返します。
func (s *Server) accept(w http.ResponseWriter, r *http.Request, c *workflow.Container) func(workflow.Job, bool) {
	return func(job workflow.Job, ok bool) {
		if !ok {
			respondWithJSON(w, http.StatusConflict, sessionResponse{
				ID:    chi.URLParam(r, paramSessionID),
				State: c.State(),
			})
			return
		}
		s.spawn(job)
		respondWithState(w, http.StatusAccepted, r, c)
	}
}

func (s *Server) handleDownloadWorkingBook(w http.ResponseWriter, r *http.Request, c *workflow.Container) {
	st := c.State()
	if st.Book == nil {
		respondWithError(w, http.StatusConflict, "no book to download")
		return
	}
	s.writePDF(w, r, *st.Book)
}

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	books, err := s.library.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to list books", "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load library")
		return
	}
	domain.SortNewestFirst(books)
	respondWithJSON(w, http.StatusOK, books)
}

func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	book, ok := s.findBook(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, book)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, paramBookID)
	if err := s.library.Delete(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete book", "book_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to delete book")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDownloadBook(w http.ResponseWriter, r *http.Request) {
	book, ok := s.findBook(w, r)
	if !ok {
		return
	}
	s.writePDF(w, r, book)
}

func (s *Server) findBook(w http.ResponseWriter, r *http.Request) (domain.Book, bool) {
	id := chi.URLParam(r, paramBookID)
	book, ok, err := s.library.Get(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to load book", "book_id", id, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to load library")
		return domain.Book{}, false
	}
	if !ok {
		respondWithError(w, http.StatusNotFound, "book not found")
		return domain.Book{}, false
	}
	return book, true
}

func (s *Server) writePDF(w http.ResponseWriter, r *http.Request, book domain.Book) {
	doc, err := s.assembler.AssembleBook(book)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to assemble PDF", "book_id", book.ID, "error", err)
		respondWithError(w, http.StatusInternalServerError, "failed to build PDF")
		return
	}
	writeDocument(w, doc)
}

func writeDocument(w http.ResponseWriter, doc *publisher.Document) {
	w.Header().Set(headerContentType, contentTypePDF)
	w.Header().Set("Content-Disposition", fmt.Sprintf(contentDispositionFmt, doc.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Data)
}
