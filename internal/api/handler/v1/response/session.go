package response

import "github.com/openmat-france/openmat-api/internal/domain"

type LoginResponse struct {
	Token string       `json:"token"`
	Admin domain.Admin `json:"admin"`
}

type LikeCountResponse struct {
	LikesCount int `json:"likes_count"`
}

type LikedSessionsResponse struct {
	SessionIDs []string `json:"session_ids"`
}

type ExportResponse struct {
	Data []domain.Session `json:"data"`
}
