package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/katalvlaran/mazechase/maze"
	"github.com/katalvlaran/mazechase/navigator"
	"github.com/katalvlaran/mazechase/pathfinder"
	"github.com/katalvlaran/mazechase/render"
	"github.com/katalvlaran/mazechase/search"
	"github.com/sirupsen/logrus"
)

// DefaultAlgorithm is searched with when a request names none.
const DefaultAlgorithm = "astar"

// EdgeJSON is one traversable link of a node.
type EdgeJSON struct {
	Dir  string     `json:"dir"`
	To   maze.Coord `json:"to"`
	Cost int        `json:"cost"`
}

// NodeJSON is a node with its links.
type NodeJSON struct {
	Pos   maze.Coord `json:"pos"`
	Edges []EdgeJSON `json:"edges"`
}

// MazeJSON is the body of GET /maze.
type MazeJSON struct {
	Width    int          `json:"width"`
	Height   int          `json:"height"`
	TileSize int          `json:"tile_size"`
	Nodes    []NodeJSON   `json:"nodes"`
	Stranded []maze.Coord `json:"stranded,omitempty"`
}

// SearchRequest is the body of POST /search. Start and Target hold one tile,
// or two adjacent tiles of a corridor.
type SearchRequest struct {
	Algorithm string       `json:"algorithm"`
	Start     []maze.Coord `json:"start"`
	Target    []maze.Coord `json:"target"`
}

// SearchResponse is the answer to POST /search.
type SearchResponse struct {
	Algorithm string       `json:"algorithm"`
	Start     string       `json:"start"`
	Target    string       `json:"target"`
	Found     bool         `json:"found"`
	Path      []maze.Coord `json:"path"`
	Expanded  int          `json:"expanded"`
	Weight    int          `json:"weight"`
}

// Health answers liveness probes.
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// MazeHandler serves the compiled graph of the current level.
func (s *Server) MazeHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		l := s.Layout()
		g, err := l.Graph()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		// a level without target spawn has nothing to be stranded from
		stranded, _ := l.Stranded()
		out := MazeJSON{
			Width:    g.Width(),
			Height:   g.Height(),
			TileSize: g.Geometry().TileSize,
			Nodes:    make([]NodeJSON, 0, g.Len()),
			Stranded: stranded,
		}
		for _, n := range g.SortedNodes() {
			nj := NodeJSON{Pos: n.Pos}
			for _, nb := range g.Neighbors(n) {
				nj.Edges = append(nj.Edges, EdgeJSON{Dir: nb.Dir.String(), To: nb.Node.Pos, Cost: nb.Cost})
			}
			out.Nodes = append(out.Nodes, nj)
		}
		c.JSON(http.StatusOK, out)
	}
}

// SearchHandler runs one search between two tile locations.
func (s *Server) SearchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Algorithm == "" {
			req.Algorithm = DefaultAlgorithm
		}
		start, err := tiles(req.Start)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start: " + err.Error()})
			return
		}
		target, err := tiles(req.Target)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "target: " + err.Error()})
			return
		}
		res, code, err := s.search(c, req.Algorithm, start, target)
		if err != nil {
			c.JSON(code, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, SearchResponse{
			Algorithm: req.Algorithm,
			Start:     start.String(),
			Target:    target.String(),
			Found:     res.Found(),
			Path:      coords(res.Path),
			Expanded:  len(res.Expanded),
			Weight:    res.Weight(),
		})
	}
}

// PictureHandler renders the current level as PNG. With from and to query
// parameters ("x,y") the search between them is drawn over it.
func (s *Server) PictureHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		l := s.Layout()
		var ov render.Overlay
		from, to := c.Query("from"), c.Query("to")
		if from != "" || to != "" {
			start, err := parseTile(from)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "from: " + err.Error()})
				return
			}
			target, err := parseTile(to)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "to: " + err.Error()})
				return
			}
			res, code, err := s.search(c, c.DefaultQuery("algorithm", DefaultAlgorithm), start, target)
			if err != nil {
				c.JSON(code, gin.H{"error": err.Error()})
				return
			}
			ov = render.Overlay{Expanded: res.Expanded, Path: res.Path}
		}
		img, err := render.Draw(l, ov, s.opts.Render...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		var buf bytes.Buffer
		if err := render.Encode(&buf, img); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// StatsHandler serves per-algorithm summaries of the stored samples.
func (s *Server) StatsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.opts.Store == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "statistics are not recorded"})
			return
		}
		sums, err := s.opts.Store.Summaries(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"summaries": sums})
	}
}

// search resolves the tiles on the current level and runs algorithm.
// The int is the status code to answer with on error.
func (s *Server) search(c *gin.Context, algorithm string, start, target navigator.CoordPair) (search.Result, int, error) {
	g, err := s.Layout().Graph()
	if err != nil {
		return search.Result{}, http.StatusInternalServerError, err
	}
	pf, err := pathfinder.Lookup(algorithm)
	if err != nil {
		return search.Result{}, http.StatusBadRequest, err
	}
	nv, err := navigator.New(g)
	if err != nil {
		return search.Result{}, http.StatusInternalServerError, err
	}
	from, ok := nv.Locate(start)
	if !ok {
		return search.Result{}, http.StatusUnprocessableEntity, fmt.Errorf("start %v is not on the graph", start)
	}
	to, ok := nv.Locate(target)
	if !ok {
		return search.Result{}, http.StatusUnprocessableEntity, fmt.Errorf("target %v is not on the graph", target)
	}
	res, err := pf.Search(c.Request.Context(), g, from, to)
	if err != nil {
		return search.Result{}, http.StatusInternalServerError, err
	}
	s.opts.Logger.WithFields(logrus.Fields{
		"algorithm": algorithm,
		"start":     from.String(),
		"target":    to.String(),
		"expanded":  len(res.Expanded),
		"found":     res.Found(),
	}).Debug("server: search")
	return res, http.StatusOK, nil
}

func tiles(cs []maze.Coord) (navigator.CoordPair, error) {
	switch len(cs) {
	case 1:
		return navigator.Single(cs[0]), nil
	case 2:
		return navigator.Pair(cs[0], cs[1]), nil
	default:
		return navigator.CoordPair{}, errors.New("want one or two tiles")
	}
}

func parseTile(s string) (navigator.CoordPair, error) {
	var c maze.Coord
	if _, err := fmt.Sscanf(s, "%d,%d", &c.X, &c.Y); err != nil {
		return navigator.CoordPair{}, fmt.Errorf("tile %q: want x,y", s)
	}
	return navigator.Single(c), nil
}

func coords(path []*maze.Node) []maze.Coord {
	out := make([]maze.Coord, len(path))
	for i, n := range path {
		out[i] = n.Pos
	}
	return out
}
