package webserver

import (
	"net/http"
	"strconv"

	"github.com/timoelan/crudai/internal/api"
)

// findChat looks a chat up by id. The backend exposes no single-chat
// endpoint, so this goes through the listing.
func (s *Server) findChat(r *http.Request, chatID string) *api.Chat {
	id, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil
	}
	for _, chat := range s.client.ListChats(r.Context()) {
		if chat.ID == id {
			return chat
		}
	}
	return nil
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request, chatID string) {
	chat := s.findChat(r, chatID)
	if chat == nil {
		http.NotFound(w, r)
		return
	}

	messages := s.client.ListMessages(r.Context(), chat.ID)
	if messages == nil {
		http.Error(w, "Failed to list messages", http.StatusBadGateway)
		return
	}

	viewModel := ChatViewModel{
		Chat:          chat,
		FormattedTime: chat.UpdatedAt.Local().Format("Jan 2, 2006 3:04 PM"),
	}

	data := PageData{
		Title:    chat.Title,
		ShowBack: true,
		Chat:     &viewModel,
		Messages: messages,
	}

	if err := s.tmpl.ExecuteTemplate(w, "base", data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, chatID string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	content := r.FormValue("content")
	if content == "" {
		http.Error(w, "Message cannot be empty", http.StatusBadRequest)
		return
	}

	chat := s.findChat(r, chatID)
	if chat == nil {
		http.NotFound(w, r)
		return
	}

	if s.client.SendMessage(r.Context(), chat.ID, content, true) == nil {
		http.Error(w, "Failed to send message", http.StatusBadGateway)
		return
	}
	// Best effort: the chat page renders fine without a reply.
	s.client.GenerateReply(r.Context(), chat.ID)

	http.Redirect(w, r, "/chat/"+chatID, http.StatusSeeOther)
}

func (s *Server) handleRenameChat(w http.ResponseWriter, r *http.Request, chatID string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	if title == "" {
		http.Error(w, "Title cannot be empty", http.StatusBadRequest)
		return
	}

	chat := s.findChat(r, chatID)
	if chat == nil {
		http.NotFound(w, r)
		return
	}

	if s.client.UpdateChat(r.Context(), chat.ID, title) == nil {
		http.Error(w, "Failed to rename chat", http.StatusBadGateway)
		return
	}

	http.Redirect(w, r, "/chat/"+chatID, http.StatusSeeOther)
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request, chatID string) {
	chat := s.findChat(r, chatID)
	if chat == nil {
		http.NotFound(w, r)
		return
	}
	if !s.client.DeleteChat(r.Context(), chat.ID) {
		http.Error(w, "Failed to delete chat", http.StatusBadGateway)
		return
	}

	// If the request is AJAX, return 200 OK
	if r.Header.Get("X-Requested-With") == "XMLHttpRequest" {
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
