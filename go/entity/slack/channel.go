package slack

type (
	ChannelCreateRequest struct {
		Name      string `json:"name" schema:"name" validate:"required"`
		IsPrivate bool   `json:"is_private" schema:"is_private"`
	}

	ChannelInviteRequest struct {
		Channel string   `json:"channel" schema:"channel" validate:"required"`
		Users   []string `json:"users" schema:"users" validate:"required,min=1"`
	}

	ChannelArchiveRequest struct {
		Channel string `json:"channel" schema:"channel" validate:"required"`
	}

	ConversationsListRequest struct {
		Cursor          string `json:"cursor" schema:"cursor,omitempty"`
		ExcludeArchived bool   `json:"exclude_archived" schema:"exclude_archived,omitempty"`
		Limit           int    `json:"limit" schema:"limit,omitempty" validate:"omitempty,max=1000"`
		Types           string `json:"types" schema:"types,omitempty"`
	}

	ConversationHistoryRequest struct {
		Channel   string `json:"channel" schema:"channel" validate:"required"`
		Cursor    string `json:"cursor" schema:"cursor,omitempty"`
		Latest    string `json:"latest" schema:"latest,omitempty"`
		Oldest    string `json:"oldest" schema:"oldest,omitempty"`
		Inclusive bool   `json:"inclusive" schema:"inclusive,omitempty"`
		Limit     int    `json:"limit" schema:"limit,omitempty" validate:"omitempty,max=1000"`
	}

	PostMessageRequest struct {
		Channel  string `json:"channel" schema:"channel" validate:"required"`
		Text     string `json:"text" schema:"text" validate:"required"`
		ThreadTs string `json:"thread_ts" schema:"thread_ts,omitempty"`
		Mrkdwn   bool   `json:"mrkdwn" schema:"mrkdwn,omitempty"`
	}

	PostMessageResponse struct {
		Channel string `json:"channel"`
		Ts      string `json:"ts"`
	}

	ResponseMetadata struct {
		NextCursor string `json:"next_cursor"`
	}
)
