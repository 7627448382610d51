package youtube

// snippet is the descriptive part of a search or video resource.
type snippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelID    string `json:"channelId"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	Thumbnails   struct {
		Default struct {
			URL string `json:"url"`
		} `json:"default"`
	} `json:"thumbnails"`
}

// searchListResponse is the API response for search.list requests.
type searchListResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

// videoListResponse is the API response for videos.list requests.
type videoListResponse struct {
	Items []struct {
		ID      string  `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

// apiError is the error envelope returned by the API on non-2xx responses.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Errors  []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}
