// Package api defines the request and response types for the HTTP API.
package api

// ErrorResponse is the common error payload. Failure responses carry only
// this field, never a partial products list.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a signed JWT after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// SignupRequest is the payload for POST /signup.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ScanRequest is the payload for POST /v1/scan.
type ScanRequest struct {
	// URL is the video to analyze. Only YouTube URLs are supported.
	URL string `json:"url" binding:"required"`

	// ProductTitle optionally narrows the scan to one product. Detections
	// whose name does not match are demoted, not dropped.
	ProductTitle string `json:"product_title"`
}

// BestFrameResponse is the highest-scoring frame for one product.
type BestFrameResponse struct {
	FrameNumber  int     `json:"frame_number"`
	Timestamp    float64 `json:"timestamp"`
	QualityScore int     `json:"quality_score"`
	ImageBase64  string  `json:"image_base64"`
}

// ScanProductResponse is one detected product in ranked order.
type ScanProductResponse struct {
	Title             string            `json:"title"`
	Name              string            `json:"name"`
	BestFrame         BestFrameResponse `json:"best_frame"`
	EnhancedImageB64  string            `json:"enhanced_image_base64,omitempty"`
	EnhancedImagePath string            `json:"enhanced_image_path,omitempty"`
	BrandHints        []string          `json:"brand_hints,omitempty"`
}

// ScanResponse is the success payload for POST /v1/scan.
// Products are sorted by best-frame quality score, descending.
type ScanResponse struct {
	Success             bool                  `json:"success"`
	TotalFramesAnalyzed int                   `json:"total_frames_analyzed"`
	Products            []ScanProductResponse `json:"products"`
}
