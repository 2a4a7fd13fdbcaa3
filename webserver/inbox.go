package webserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/timoelan/crudai/internal/api"
)

func (s *Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	// Get page number from query parameters
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	// Get search query from query parameters
	query := r.URL.Query().Get("q")

	chats := s.client.ListChats(r.Context())
	if chats == nil {
		http.Error(w, "Failed to list chats", http.StatusBadGateway)
		return
	}

	// The backend has no search endpoint; filter titles here.
	if query != "" {
		filtered := make([]*api.Chat, 0, len(chats))
		needle := strings.ToLower(query)
		for _, chat := range chats {
			if strings.Contains(strings.ToLower(chat.Title), needle) {
				filtered = append(filtered, chat)
			}
		}
		chats = filtered
	}

	totalPages := (len(chats) + s.pageSize - 1) / s.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * s.pageSize
	end := start + s.pageSize
	if end > len(chats) {
		end = len(chats)
	}

	chatViews := []ChatViewModel{}
	for _, chat := range chats[start:end] {
		chatViews = append(chatViews, ChatViewModel{
			Chat:          chat,
			FormattedTime: chat.UpdatedAt.Local().Format("Jan 2, 2006 3:04 PM"),
		})
	}

	data := &PageData{
		Title:       "Chats",
		Chats:       chatViews,
		CurrentPage: page,
		TotalPages:  totalPages,
		Query:       query,
	}

	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, "Failed to render template", http.StatusInternalServerError)
		return
	}
}
