package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Jenaru0/SIGIM/config"
	"github.com/Jenaru0/SIGIM/middlewares"
	"github.com/Jenaru0/SIGIM/models"
	"github.com/Jenaru0/SIGIM/services"
	"github.com/Jenaru0/SIGIM/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const incidentsCollection = "incidencias"

// CreateReport handles the citizen submission: full wizard re-validation,
// image preparation, evidence upload and the initial pendiente document.
// The cooldown gate runs as middleware before this handler.
func CreateReport(c *gin.Context) {
	var input struct {
		Categoria      string   `form:"categoria"`
		Descripcion    string   `form:"descripcion"`
		DireccionTexto string   `form:"direccionTexto"`
		Lat            *float64 `form:"lat"`
		Lng            *float64 `form:"lng"`
	}
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fileHeader, fileErr := c.FormFile("foto")

	form := services.ReportForm{
		Category:    input.Categoria,
		Description: input.Descripcion,
		Address:     input.DireccionTexto,
		Lat:         input.Lat,
		Lng:         input.Lng,
		HasPhoto:    fileErr == nil && fileHeader != nil,
	}
	if step, err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "step": step})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error al procesar la imagen. Intenta con otra."})
		return
	}
	defer file.Close()

	prepared, err := services.PrepareImage(file, fileHeader.Header.Get("Content-Type"), fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	evidenceURL, err := services.NewCloudinaryClient().Upload(ctx, prepared, fileHeader.Filename, "incidencias")
	if err != nil {
		logrus.WithError(err).Error("evidence upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al enviar el reporte. Intenta nuevamente."})
		return
	}

	now := time.Now()
	incident := models.Incident{
		ID:          primitive.NewObjectID(),
		TicketID:    utils.GenerateTicketID(),
		Category:    models.Category(input.Categoria),
		Description: strings.TrimSpace(input.Descripcion),
		Location: models.Location{
			Lat:       input.Lat,
			Lng:       input.Lng,
			Direccion: strings.TrimSpace(input.DireccionTexto),
		},
		EvidenceURL: evidenceURL,
		Status:      models.Pendiente,
		CreatedAt:   now,
		UpdatedAt:   now,
		// Resolution fields stay nil until the resuelto transition.
	}

	if _, err := config.GetCollection(incidentsCollection).InsertOne(ctx, incident); err != nil {
		// The uploaded evidence is orphaned here; there is no compensation.
		logrus.WithError(err).Error("failed to insert incident")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al enviar el reporte. Intenta nuevamente."})
		return
	}

	middlewares.RecordSubmission(c.ClientIP())

	logrus.WithFields(logrus.Fields{
		"ticketId":  incident.TicketID,
		"categoria": incident.Category,
	}).Info("incident created")

	c.JSON(http.StatusCreated, gin.H{"ticketId": incident.TicketID})
}

// GetReportByTicket is the citizen-side ticket lookup. Matching is exact
// after upper-casing. If a ticket code ever collides, the first match wins.
func GetReportByTicket(c *gin.Context) {
	ticketID := strings.ToUpper(strings.TrimSpace(c.Param("ticketId")))
	if ticketID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingresa un código de ticket"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var incident models.Incident
	err := config.GetCollection(incidentsCollection).FindOne(ctx, bson.M{"ticketId": ticketID}).Decode(&incident)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "No se encontró ningún reporte con ese ticket"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al buscar el reporte"})
		}
		return
	}

	c.JSON(http.StatusOK, incident)
}

// RecentReports feeds the public map: newest incidents that can actually be
// placed, projected down to what the map needs.
func RecentReports(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"ubicacion.lat": bson.M{"$exists": true, "$ne": nil},
		"ubicacion.lng": bson.M{"$exists": true, "$ne": nil},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "creadoEn", Value: -1}}).
		SetLimit(100).
		SetProjection(bson.M{
			"_id":       1,
			"ticketId":  1,
			"categoria": 1,
			"estado":    1,
			"ubicacion": 1,
			"creadoEn":  1,
		})

	cursor, err := config.GetCollection(incidentsCollection).Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar el mapa"})
		return
	}
	defer cursor.Close(ctx)

	var incidents []models.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error al cargar el mapa"})
		return
	}

	type mapPin struct {
		ID        string          `json:"id"`
		TicketID  string          `json:"ticketId"`
		Category  models.Category `json:"categoria"`
		Status    models.Status   `json:"estado"`
		Lat       float64         `json:"lat"`
		Lng       float64         `json:"lng"`
		Direccion string          `json:"direccionTexto"`
		CreatedAt time.Time       `json:"creadoEn"`
	}

	pins := make([]mapPin, 0, len(incidents))
	for _, inc := range incidents {
		if !inc.HasCoordinates() {
			continue
		}
		pins = append(pins, mapPin{
			ID:        inc.ID.Hex(),
			TicketID:  inc.TicketID,
			Category:  inc.Category,
			Status:    inc.Status,
			Lat:       *inc.Location.Lat,
			Lng:       *inc.Location.Lng,
			Direccion: inc.Location.Direccion,
			CreatedAt: inc.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, pins)
}
