package domain

import "context"

// Content kinds.
const (
	ContentText  = "text"
	ContentImage = "image"
	ContentVideo = "video"
)

// EduContent is one health-education article.
type EduContent struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Kind     string `json:"type"`
	Cover    string `json:"cover"`
	Summary  string `json:"summary"`
	Content  string `json:"content"`
	MediaURL string `json:"mediaUrl,omitempty"`
	IsRead   bool   `json:"isRead"`
	Favorite bool   `json:"favorite"`
}

// DefaultEducation seeds the education catalog.
func DefaultEducation() []EduContent {
	return []EduContent{
		{
			ID:      "edu1",
			Title:   "心衰患者的饮食禁忌：三低原则",
			Kind:    ContentText,
			Cover:   "https://picsum.photos/400/250?diet",
			Summary: "低盐、低脂肪、低热量，保护心脏的第一步。",
			Content: "心衰患者的饮食应遵循“三低”原则：1. 低盐：每日食盐摄入量应控制在3克以内，避免腌制食品。2. 低脂：少吃肥肉、油炸食品。3. 低热量：保持适宜体重，减轻心脏负担。此外，应少食多餐，避免过饱。",
		},
		{
			ID:       "edu2",
			Title:    "如何正确测量每日出入量",
			Kind:     ContentVideo,
			Cover:    "https://picsum.photos/400/250?video",
			Summary:  "视频演示：精准记录，医生诊断的重要参考。",
			Content:  "记录出入量包括：每日喝水量、稀饭量、尿量等。建议使用带刻度的杯子和量尿器。心衰患者水分控制至关重要。",
			MediaURL: "https://www.w3schools.com/html/mov_bbb.mp4",
		},
		{
			ID:       "edu3",
			Title:    "识别心衰加重的早期信号",
			Kind:     ContentImage,
			Cover:    "https://picsum.photos/400/250?warning",
			Summary:  "看图说话：当出现以下症状，请及时就医。",
			Content:  "如果您发现：夜间憋醒、下肢水肿加重、体重短时间内突然增加（如3天增加2kg），请务必引起重视，联系您的随访医生或前往医院。",
			MediaURL: "https://picsum.photos/800/1200?symptoms",
		},
	}
}

// EducationRepository is the port for education content, read flags and
// favourites.
type EducationRepository interface {
	ListEducation(ctx context.Context) ([]EduContent, error)
	// MarkEducationRead flips the read flag and reports whether it was
	// unread before. Unknown ids yield ErrNotFound.
	MarkEducationRead(ctx context.Context, id string) (bool, error)
	// UnmarkEducationRead clears the read flag of id.
	UnmarkEducationRead(ctx context.Context, id string) error
	// ToggleFavorite flips favourite membership and returns the new state.
	ToggleFavorite(ctx context.Context, id string) (bool, error)
}
