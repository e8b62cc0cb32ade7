package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	gh "github.com/google/go-github/v62/github"
	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"labeler/internal/labeler"
	"labeler/internal/models"
	"labeler/internal/tasks"
)

// Server exposes the webhook trigger surface. Discussion-created
// events are labeled either inline or through the worker queue when
// an enqueuer is configured.
type Server struct {
	labeler  *labeler.Service
	enqueuer *asynq.Client
	secret   string
}

// New builds the server. enqueuer may be nil, in which case events
// are labeled inline.
func New(svc *labeler.Service, enqueuer *asynq.Client, secret string) *Server {
	return &Server{labeler: svc, enqueuer: enqueuer, secret: secret}
}

// Router builds the gin engine with the webhook and health routes.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.POST("/webhook/github", s.handleWebhook)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return router
}

func (s *Server) handleWebhook(c *gin.Context) {
	payload, err := gh.ValidatePayload(c.Request, []byte(s.secret))
	if err != nil {
		log.Warnf("Rejected webhook delivery: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	event, err := gh.ParseWebHook(gh.WebHookType(c.Request), payload)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unparseable payload"})
		return
	}

	de, ok := event.(*gh.DiscussionEvent)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if de.GetAction() != "created" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored", "action": de.GetAction()})
		return
	}

	repo := models.Repo{
		Owner: de.GetRepo().GetOwner().GetLogin(),
		Name:  de.GetRepo().GetName(),
	}
	number := de.GetDiscussion().GetNumber()
	log.Infof("Discussion created event for %s#%d (delivery %s)", repo, number, gh.DeliveryID(c.Request))

	if s.enqueuer != nil {
		task, opts, err := tasks.NewLabelTask(repo, number)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if _, err := s.enqueuer.EnqueueContext(c.Request.Context(), task, opts...); err != nil {
			log.Errorf("Failed to enqueue label task for %s#%d: %v", repo, number, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "enqueue failed"})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
		return
	}

	applied, err := s.labeler.LabelByNumber(c.Request.Context(), repo, number)
	if err != nil {
		log.Errorf("Failed to label discussion %s#%d: %v", repo, number, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "labeling failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "labeled", "tags": applied})
}
