package commands

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

func HelpReply(prefix string) Reply {
	return Reply{Embed: HelpEmbed(prefix)}
}

func HandleHelp(s Session, i *discordgo.InteractionCreate, prefix string) {
	respond(s, i, HelpReply(prefix))
}

// UnknownReply answers a text command the bot does not know.
func UnknownReply(prefix string) Reply {
	return Reply{Content: "❓ Unknown command. Try `" + prefix + "help` to see all commands."}
}

// ParseText splits a prefixed text command into its lower-cased name and
// arguments. ok is false when content is not a command.
func ParseText(prefix, content string) (name string, args []string, ok bool) {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}
