package explorer

import "github.com/gdamore/tcell/v2"

type Styles struct {
	FocusedBorderColor tcell.Color
	BlurBorderColor    tcell.Color

	GroupBackgroundColor tcell.Color
	CellTextColor        tcell.Color
	ErrorColor           tcell.Color
}

var Style = Styles{
	FocusedBorderColor: tcell.ColorCornflowerBlue,
	BlurBorderColor:    tcell.ColorGray,

	GroupBackgroundColor: tcell.NewHexColor(0x1a1a1a),
	CellTextColor:        tcell.ColorLightGray,
	ErrorColor:           tcell.ColorOrangeRed,
}

var tilePalette = []tcell.Color{
	tcell.ColorCornflowerBlue,
	tcell.ColorMediumSeaGreen,
	tcell.ColorGoldenrod,
	tcell.ColorIndianRed,
	tcell.ColorMediumPurple,
	tcell.ColorDarkCyan,
	tcell.ColorSandyBrown,
	tcell.ColorLightSlateGray,
}

var extColors = map[string]tcell.Color{
	".exe":  tcell.ColorRed,
	".go":   tcell.ColorAqua,
	".cpp":  tcell.ColorDodgerBlue,
	".c":    tcell.ColorDodgerBlue,
	".h":    tcell.ColorDodgerBlue,
	".cs":   tcell.ColorLime,
	".js":   tcell.ColorYellow,
	".ts":   tcell.ColorDeepSkyBlue,
	".html": tcell.ColorOrangeRed,
	".css":  tcell.ColorViolet,
	".sql":  tcell.ColorSpringGreen,
	".json": tcell.ColorGold,
	".xml":  tcell.ColorLightYellow,
	".yaml": tcell.ColorLightYellow,
	".yml":  tcell.ColorLightYellow,
	".md":   tcell.ColorBisque,
	".py":   tcell.ColorLightGreen,
	".rb":   tcell.ColorRed,
	".php":  tcell.ColorPurple,
	".rs":   tcell.ColorOrange,
	".sh":   tcell.ColorGreen,
	".txt":  tcell.ColorWhite,
	".csv":  tcell.ColorLightGreen,
	".jpg":  tcell.ColorMediumPurple,
	".jpeg": tcell.ColorMediumPurple,
	".png":  tcell.ColorMediumPurple,
	".gif":  tcell.ColorMediumPurple,
	".mp4":  tcell.ColorLightSalmon,
	".log":  tcell.ColorRosyBrown,
	".zip":  tcell.ColorTomato,
	".7z":   tcell.ColorTomato,
	".rar":  tcell.ColorTomato,
	".gz":   tcell.ColorTomato,
}

// ExtColor returns the colour used for an extension token.
func ExtColor(ext string) tcell.Color {
	if color, ok := extColors[ext]; ok {
		return color
	}
	return tcell.ColorWhiteSmoke
}
