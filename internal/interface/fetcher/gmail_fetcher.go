package fetcher

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
)

// GmailPrefix marks a mailbox location: gmail:<search query>#<attachment filename>
const GmailPrefix = "gmail:"

// gmailSearchDepth caps how many matching messages are inspected, newest first
const gmailSearchDepth = 20

// GmailFetcher reads a dataset from a CSV attachment of the newest message
// matching a Gmail search query
type GmailFetcher struct {
	gmailService *gmail.Service
	logger       logger.Logger
}

// NewGmailFetcher creates a Gmail fetcher authenticated by tokenSource
func NewGmailFetcher(ctx context.Context, tokenSource oauth2.TokenSource, logger logger.Logger) (*GmailFetcher, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}
	return NewGmailFetcherWithService(service, logger), nil
}

// NewGmailFetcherWithService wraps an existing Gmail API client
func NewGmailFetcherWithService(service *gmail.Service, logger logger.Logger) *GmailFetcher {
	return &GmailFetcher{
		gmailService: service,
		logger:       logger,
	}
}

// ParseGmailLocation splits a gmail: location into query and filename
func ParseGmailLocation(location string) (query, filename string, err error) {
	rest := strings.TrimPrefix(location, GmailPrefix)
	idx := strings.LastIndex(rest, "#")
	if !strings.HasPrefix(location, GmailPrefix) || idx <= 0 || idx == len(rest)-1 {
		return "", "", fmt.Errorf("invalid gmail location %q: want gmail:<query>#<filename>", location)
	}
	return rest[:idx], rest[idx+1:], nil
}

// CanHandle accepts gmail: locations
func (s *GmailFetcher) CanHandle(location string) bool {
	return strings.HasPrefix(location, GmailPrefix)
}

// Fetch returns the named attachment from the newest matching message
func (s *GmailFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	query, filename, err := ParseGmailLocation(location)
	if err != nil {
		return nil, err
	}

	resp, err := s.gmailService.Users.Messages.List("me").Q(query).MaxResults(gmailSearchDepth).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list messages: %v", repository.ErrSourceUnavailable, err)
	}
	s.logger.Info("Searched mailbox", "query", query, "messages", len(resp.Messages))

	for _, msg := range resp.Messages {
		fullMsg, err := s.gmailService.Users.Messages.Get("me", msg.Id).Context(ctx).Do()
		if err != nil {
			s.logger.Error("Failed to get message", "msgId", msg.Id, "error", err)
			continue
		}

		part := findAttachment(fullMsg.Payload, filename)
		if part == nil {
			continue
		}

		data, err := s.attachmentData(ctx, msg.Id, part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", repository.ErrSourceUnavailable, err)
		}
		s.logger.Info("Fetched attachment",
			"msgId", msg.Id,
			"filename", filename,
			"bytes", len(data))
		return data, nil
	}

	return nil, fmt.Errorf("%w: no message matching %q has attachment %q",
		repository.ErrSourceUnavailable, query, filename)
}

// attachmentData returns inline body data, or downloads it from the
// attachments endpoint when the body only carries an attachment id
func (s *GmailFetcher) attachmentData(ctx context.Context, msgID string, part *gmail.MessagePart) ([]byte, error) {
	if part.Body == nil {
		return nil, errors.New("attachment has no body")
	}
	if part.Body.Data != "" {
		return decodeBase64URL(part.Body.Data)
	}
	if part.Body.AttachmentId == "" {
		return nil, errors.New("attachment has neither data nor id")
	}

	body, err := s.gmailService.Users.Messages.Attachments.Get("me", msgID, part.Body.AttachmentId).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return decodeBase64URL(body.Data)
}

// findAttachment walks the MIME tree depth-first for a part named filename
func findAttachment(part *gmail.MessagePart, filename string) *gmail.MessagePart {
	if part == nil {
		return nil
	}
	if part.Filename == filename {
		return part
	}
	for _, child := range part.Parts {
		if found := findAttachment(child, filename); found != nil {
			return found
		}
	}
	return nil
}

func decodeBase64URL(data string) ([]byte, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err == nil {
		return decoded, nil
	}
	return base64.RawURLEncoding.DecodeString(data)
}
