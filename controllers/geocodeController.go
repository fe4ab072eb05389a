package controllers

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Jenaru0/SIGIM/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SearchAddress forward-geocodes a free-text address for the location step.
// "Not found" and a failing geocoder look the same to the caller: a null
// result, never an error page.
func SearchAddress(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingresa una dirección para buscar"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coords, err := services.NewGeocodingClient().Forward(ctx, query)
	if err != nil {
		logrus.WithError(err).Warn("forward geocoding failed")
		coords = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"found":     coords != nil,
		"resultado": coords,
	})
}

// ReverseGeocode labels a map pick with a readable address. The geocoding
// client always returns some string, so this cannot fail past the
// coordinate parse.
func ReverseGeocode(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordenadas inválidas"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	direccion := services.NewGeocodingClient().Reverse(ctx, lat, lng)
	c.JSON(http.StatusOK, gin.H{"direccionTexto": direccion})
}
