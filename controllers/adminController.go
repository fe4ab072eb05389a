package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Jenaru0/SIGIM/config"
	"github.com/Jenaru0/SIGIM/models"
	"github.com/Jenaru0/SIGIM/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListIncidents returns every incident, newest first. The estado filter is
// applied in-process after the full fetch: one less compound index to
// operate, at the cost of read bandwidth.
func ListIncidents(c *gin.Context) {
	estado := c.Query("estado")
	if estado != "" && !models.Status(estado).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid estado filter"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "creadoEn", Value: -1}})
	cursor, err := config.GetCollection(incidentsCollection).Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve incidents"})
		return
	}
	defer cursor.Close(ctx)

	var incidents []models.Incident
	if err := cursor.All(ctx, &incidents); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode incidents"})
		return
	}

	if estado != "" {
		filtered := make([]models.Incident, 0, len(incidents))
		for _, inc := range incidents {
			if inc.Status == models.Status(estado) {
				filtered = append(filtered, inc)
			}
		}
		incidents = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"incidencias": incidents,
		"total":       len(incidents),
	})
}

// GetIncident retrieves a single incident by its internal id.
func GetIncident(c *gin.Context) {
	incidentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var incident models.Incident
	err = config.GetCollection(incidentsCollection).FindOne(ctx, bson.M{"_id": incidentID}).Decode(&incident)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve incident"})
		}
		return
	}

	c.JSON(http.StatusOK, incident)
}

// AdvanceIncident drives the only photo-less transition, pendiente to
// en_proceso. The update is conditional on the state the admin saw, so two
// staff members racing on the same incident cannot repeat or skip a step.
func AdvanceIncident(c *gin.Context) {
	incidentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(incidentsCollection)

	var incident models.Incident
	err = collection.FindOne(ctx, bson.M{"_id": incidentID}).Decode(&incident)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve incident"})
		}
		return
	}

	next, ok := incident.Status.Next()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{"error": "A resolved incident cannot be advanced"})
		return
	}
	if next == models.Resuelto {
		c.JSON(http.StatusConflict, gin.H{"error": "Resolving requires a solution photo; use the resolve endpoint"})
		return
	}

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": incidentID, "estado": incident.Status},
		bson.M{"$set": bson.M{"estado": next, "actualizadoEn": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incident"})
		return
	}
	if result.MatchedCount == 0 {
		// Someone else moved it first.
		c.JSON(http.StatusConflict, gin.H{"error": "Incident state changed, reload the list"})
		return
	}

	logrus.WithFields(logrus.Fields{
		"ticketId": incident.TicketID,
		"estado":   next,
	}).Info("incident advanced")

	c.JSON(http.StatusOK, gin.H{"ticketId": incident.TicketID, "estado": next})
}

// ResolveIncident is the terminal transition and the only one with extra
// required input: a solution photo, plus an optional comment. The photo is
// uploaded first, then state and all three resolution fields are written in
// one conditional update.
func ResolveIncident(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	resolvedBy, ok := userID.(string)
	if !ok || resolvedBy == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	incidentID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid incident ID"})
		return
	}

	fileHeader, err := c.FormFile("foto")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sube una foto de la solución"})
		return
	}
	comment := strings.TrimSpace(c.PostForm("comentario"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.GetCollection(incidentsCollection)

	var incident models.Incident
	err = collection.FindOne(ctx, bson.M{"_id": incidentID}).Decode(&incident)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Incident not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve incident"})
		}
		return
	}
	if incident.Status != models.EnProceso {
		c.JSON(http.StatusConflict, gin.H{"error": "Only an en_proceso incident can be resolved"})
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

	solutionURL, err := services.NewCloudinaryClient().Upload(ctx, prepared, fileHeader.Filename, "soluciones")
	if err != nil {
		logrus.WithError(err).Error("solution upload failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Error al resolver incidencia"})
		return
	}

	result, err := collection.UpdateOne(ctx,
		bson.M{"_id": incidentID, "estado": models.EnProceso},
		bson.M{"$set": bson.M{
			"estado":               models.Resuelto,
			"fotoSolucionURL":      solutionURL,
			"comentarioResolucion": comment,
			"resueltoPor":          resolvedBy,
			"actualizadoEn":        time.Now(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update incident"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Incident state changed, reload the list"})
		return
	}

	logrus.WithField("ticketId", incident.TicketID).Info("incident resolved")

	c.JSON(http.StatusOK, gin.H{
		"ticketId":        incident.TicketID,
		"estado":          models.Resuelto,
		"fotoSolucionURL": solutionURL,
	})
}

// GetDashboardStats backs the admin dashboard: totals per estado plus a
// per-category breakdown.
func GetDashboardStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := config.GetCollection(incidentsCollection)

	total, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count incidents"})
		return
	}

	counts := map[models.Status]int64{}
	for _, status := range []models.Status{models.Pendiente, models.EnProceso, models.Resuelto} {
		n, err := collection.CountDocuments(ctx, bson.M{"estado": status})
		if err != nil {
			n = 0
		}
		counts[status] = n
	}

	categoryPipeline := []bson.M{
		{"$group": bson.M{"_id": "$categoria", "count": bson.M{"$sum": 1}}},
		{"$project": bson.M{"categoria": "$_id", "count": 1, "_id": 0}},
	}
	categoryCursor, err := collection.Aggregate(ctx, categoryPipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate categories"})
		return
	}
	defer categoryCursor.Close(ctx)

	var byCategory []bson.M
	if err := categoryCursor.All(ctx, &byCategory); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode category counts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        total,
		"pendientes":   counts[models.Pendiente],
		"enProceso":    counts[models.EnProceso],
		"resueltos":    counts[models.Resuelto],
		"porCategoria": byCategory,
	})
}
