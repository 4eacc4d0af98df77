package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	user, err := s.users.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, messages{common.ErrorConflict: "Email already registered"})
		return
	}

	s.logger.Info(r.Context(), "Registered", "user_id", user.ID)
	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      toUserResponse(res.User),
	})
}

func (s *HTTPServer) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	user, err := s.users.GetProfile(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err, messages{common.ErrorNotFound: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req updateProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), userID, req.FullName, req.Email)
	if err != nil {
		s.writeError(w, r, err, messages{
			common.ErrorNotFound: "User not found",
			common.ErrorConflict: "Email already in use",
		})
		return
	}

	writeJSON(w, http.StatusOK, updateProfileResponse{
		Message: "Profile updated",
		User:    toUserResponse(user),
	})
}
