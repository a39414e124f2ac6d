package middlewares

import (
	"log"
	"regexp"
	"strings"
	"time"

	"ecotrack-backend/idempotency"
	"ecotrack-backend/models"
	"ecotrack-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestIDHeader carries the client-supplied idempotency key.
const RequestIDHeader = "X-Request-ID"

// ReplayHeader marks a response served from a stored record.
const ReplayHeader = "X-Idempotent-Replay"

// DefaultSensitivePrefixes are the route prefixes whose mutating requests
// must carry an idempotency key. Deployment can override via IdempotencyConfig.
var DefaultSensitivePrefixes = []string{
	"/api/auth/register",
	"/api/activities",
	"/api/exchanges",
	"/api/messages",
	"/api/uploads",
}

// uuidPattern: canonical 8-4-4-4-12 grouping, version nibble 1-5,
// variant nibble 8/9/a/b.
var uuidPattern = regexp.MustCompile(`^(?i)[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

// IsValidRequestID reports whether s is a syntactically valid UUID (v1-v5).
func IsValidRequestID(s string) bool {
	return uuidPattern.MatchString(s)
}

// IdempotencyConfig tunes the guard. Zero value gets the defaults.
type IdempotencyConfig struct {
	SensitivePrefixes []string
	ReplayWindow      time.Duration
}

// Idempotency deduplicates mutating requests to sensitive routes. The first
// request with a given X-Request-ID executes normally and its response is
// recorded; replays within the window get the stored response back with
// X-Idempotent-Replay: true and never reach the handler. Store failures are
// logged and swallowed (fail-open): only bad caller input is rejected.
func Idempotency(store idempotency.Store, cfg IdempotencyConfig) fiber.Handler {
	prefixes := cfg.SensitivePrefixes
	if prefixes == nil {
		prefixes = DefaultSensitivePrefixes
	}
	window := cfg.ReplayWindow
	if window <= 0 {
		window = idempotency.ReplayWindow
	}

	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch {
			return c.Next()
		}

		path := c.Path()
		sensitive := false
		for _, p := range prefixes {
			if strings.HasPrefix(path, p) {
				sensitive = true
				break
			}
		}
		if !sensitive {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get(RequestIDHeader))
		if key == "" {
			return Fail(c, fiber.StatusBadRequest, RequestIDHeader+" header is required for this operation")
		}
		if !IsValidRequestID(key) {
			return Fail(c, fiber.StatusBadRequest, RequestIDHeader+" must be a valid UUID")
		}

		// Replay check. Storage trouble here must not block the request.
		rec, err := store.FindValid(key, time.Now().Add(-window))
		if err == nil {
			contentType := rec.ResponseType
			if contentType == "" {
				contentType = fiber.MIMEApplicationJSON
			}
			c.Set(ReplayHeader, "true")
			c.Set(fiber.HeaderContentType, contentType)
			c.Status(rec.ResponseStatus)
			return c.Send(rec.ResponseBody)
		}
		if err != idempotency.ErrNotFound {
			log.Printf("idempotency lookup failed for key %s: %v", key, err)
		}

		// First execution. Snapshot the request body before the handler runs;
		// fasthttp reuses its buffers.
		reqBody := make([]byte, len(c.Body()))
		copy(reqBody, c.Body())
		uri := c.OriginalURL()
		ip := utils.ClientIP(func(h string) string { return c.Get(h) }, c.Context().RemoteAddr().String())
		userAgent := c.Get(fiber.HeaderUserAgent)

		if err := c.Next(); err != nil {
			// Errored executions are not recorded; the centralized handler
			// shapes the response after this middleware returns.
			return err
		}

		respBody := make([]byte, len(c.Response().Body()))
		copy(respBody, c.Response().Body())

		rec = &models.IdempotencyRecord{
			IdempotencyKey: key,
			RequestMethod:  method,
			RequestURI:     uri,
			RequestBody:    reqBody,
			ResponseStatus: c.Response().StatusCode(),
			ResponseBody:   respBody,
			ResponseType:   string(c.Response().Header.ContentType()),
			IPAddress:      ip,
			UserAgent:      userAgent,
		}
		if userID, ok := c.Locals("userID").(string); ok && userID != "" {
			rec.UserId = &userID
		}

		// Store-then-return: the response is already final, a failed insert
		// only costs replay protection for this one request.
		switch err := store.Insert(rec); err {
		case nil:
		case idempotency.ErrDuplicateKey:
			log.Printf("idempotency key %s raced a concurrent request, keeping first record", key)
		default:
			log.Printf("idempotency store failed for key %s: %v", key, err)
		}

		return nil
	}
}
