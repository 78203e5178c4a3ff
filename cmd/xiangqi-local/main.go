// 终端对局器：人机对弈或双引擎演示，调试用。
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/nan786521/chinese-chess/internal/engine"
	"github.com/nan786521/chinese-chess/internal/xiangqi"
)

func main() {
	level := flag.String("level", "medium", "AI difficulty: beginner/easy/medium/hard/master")
	humanSide := flag.String("side", "red", "human plays red/black/none")
	flag.Parse()

	diff, ok := engine.ParseDifficulty(*level)
	if !ok {
		log.Fatalf("unknown difficulty %q", *level)
	}
	cfg := engine.ConfigFor(diff)

	var human xiangqi.Side
	switch *humanSide {
	case "red":
		human = xiangqi.Red
	case "black":
		human = xiangqi.Black
	case "none":
		human = xiangqi.NoSide
	default:
		log.Fatalf("unknown side %q", *humanSide)
	}

	b := xiangqi.NewBoard()
	b.SetupInitialPosition()
	e := engine.NewEngine()
	side := xiangqi.Red
	reader := bufio.NewReader(os.Stdin)

	for {
		printBoard(b)
		if b.GameStatus(side) != xiangqi.StatusPlaying {
			fmt.Println(b.GameStatus(side))
			return
		}

		var mv xiangqi.Move
		if side == human {
			m, quit := readMove(reader, b, side)
			if quit {
				return
			}
			mv = m
		} else {
			m, ok := e.FindBestMove(b, side, cfg)
			if !ok {
				fmt.Println("engine has no moves")
				return
			}
			mv = m
			fmt.Printf("engine: %s (depth %d, %d nodes)\n",
				formatMove(mv), e.LastIterationDepth(), e.Nodes())
		}

		b.MakeMove(mv)
		side = xiangqi.Opposite(side)
	}
}

// 走法记号：列 a-i（左到右）+ 行 0-9（上到下），如 b7e7
func parseMove(s string) (xiangqi.Move, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 4 {
		return xiangqi.Move{}, false
	}
	fc, fr := int(s[0]-'a'), int(s[1]-'0')
	tc, tr := int(s[2]-'a'), int(s[3]-'0')
	if fc < 0 || fc >= xiangqi.Cols || fr < 0 || fr >= xiangqi.Rows ||
		tc < 0 || tc >= xiangqi.Cols || tr < 0 || tr >= xiangqi.Rows {
		return xiangqi.Move{}, false
	}
	return xiangqi.Move{From: xiangqi.IndexOf(fr, fc), To: xiangqi.IndexOf(tr, tc)}, true
}

func formatMove(mv xiangqi.Move) string {
	return fmt.Sprintf("%c%d%c%d",
		'a'+xiangqi.ColOf(mv.From), xiangqi.RowOf(mv.From),
		'a'+xiangqi.ColOf(mv.To), xiangqi.RowOf(mv.To))
}

func readMove(reader *bufio.Reader, b *xiangqi.Board, side xiangqi.Side) (xiangqi.Move, bool) {
	legal := b.GenerateAllLegalMoves(side)
	for {
		fmt.Print("your move (e.g. b7e7, q to quit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return xiangqi.Move{}, true
		}
		line = strings.TrimSpace(line)
		if line == "q" || line == "quit" {
			return xiangqi.Move{}, true
		}
		mv, ok := parseMove(line)
		if !ok {
			fmt.Println("can't parse that")
			continue
		}
		for _, lm := range legal {
			if lm.From == mv.From && lm.To == mv.To {
				return mv, false
			}
		}
		fmt.Println("illegal move")
	}
}

func printBoard(b *xiangqi.Board) {
	fen, _ := splitFEN(xiangqi.Encode(b, xiangqi.Red))
	rows := strings.Split(fen, "/")
	fmt.Println("   a b c d e f g h i")
	for r, row := range rows {
		var cells []string
		for _, ch := range row {
			if ch >= '1' && ch <= '9' {
				for i := 0; i < int(ch-'0'); i++ {
					cells = append(cells, ".")
				}
			} else {
				cells = append(cells, string(ch))
			}
		}
		fmt.Printf("%2d %s\n", r, strings.Join(cells, " "))
	}
}

func splitFEN(fen string) (string, string) {
	parts := strings.SplitN(fen, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return fen, ""
}
