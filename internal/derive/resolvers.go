package derive

import (
	"nfoforge/internal/media"
	"nfoforge/internal/tokens"
)

func str(fn func(*State) string) resolverFunc {
	return func(s *State) tokens.Value { return text(fn(s)) }
}

func audio(get func(media.Audio) string) resolverFunc {
	return func(s *State) tokens.Value { return text(s.audioField(get)) }
}

var resolvers = map[string]resolverFunc{
	tokens.Edition:                               str((*State).edition),
	tokens.FrameSize:                             str((*State).frameSize),
	tokens.Hybrid:                                str((*State).hybrid),
	"localization":                               str((*State).localization),
	"audio_bitrate":                              str((*State).audioBitrate),
	"audio_bitrate_formatted":                    audio(func(a media.Audio) string { return a.BitRateDisplay }),
	"audio_channel_s":                            str((*State).audioChannels),
	"audio_channel_s_i":                          audio(func(a media.Audio) string { return a.Channels }),
	"audio_channel_s_layout":                     audio(func(a media.Audio) string { return a.ChannelLayout }),
	"audio_codec":                                str((*State).audioCodec),
	"audio_commercial_name":                      audio(func(a media.Audio) string { return a.CommercialName }),
	"audio_compression":                          audio(func(a media.Audio) string { return a.CompressionMode }),
	"audio_format_info":                          audio(func(a media.Audio) string { return a.Channels }),
	"audio_language_1_full":                      str(func(s *State) string { return s.audioLanguageFirst(0) }),
	"audio_language_1_iso_639_1":                 str(func(s *State) string { return s.audioLanguageFirst(1) }),
	"audio_language_1_iso_639_2":                 str(func(s *State) string { return s.audioLanguageFirst(2) }),
	"audio_language_2_iso_639_1":                 str(func(s *State) string { return s.audioLanguageJoined(1, false) }),
	"audio_language_2_iso_639_2":                 str(func(s *State) string { return s.audioLanguageJoined(2, false) }),
	"audio_language_all_iso_639_1":               str(func(s *State) string { return s.audioLanguageJoined(1, true) }),
	"audio_language_all_iso_639_2":               str(func(s *State) string { return s.audioLanguageJoined(2, true) }),
	"audio_language_all_full":                    str(func(s *State) string { return s.audioLanguageJoined(0, true) }),
	"audio_language_dual":                        str((*State).audioLanguageDual),
	"audio_language_multi":                       str((*State).audioLanguageMulti),
	"audio_sample_rate":                          audio(func(a media.Audio) string { return a.SamplingRateDisplay }),
	"video_3d":                                   str((*State).video3D),
	"video_bit_depth_space":                      str(func(s *State) string { return s.bitDepth(false) }),
	"video_bit_depth_dash":                       str(func(s *State) string { return s.bitDepth(true) }),
	"video_codec":                                str((*State).videoCodec),
	"video_dynamic_range":                        str((*State).dynamicRange),
	"video_dynamic_range_type":                   str(func(s *State) string { return s.dynamicRangeType(false, false) }),
	"video_dynamic_range_type_inc_sdr":           str(func(s *State) string { return s.dynamicRangeType(true, false) }),
	"video_dynamic_range_type_inc_sdr_over_1080": str(func(s *State) string { return s.dynamicRangeType(true, true) }),
	"video_format":                               str((*State).videoFormat),
	"video_height":                               str((*State).videoHeight),
	"video_language_full":                        str(func(s *State) string { return s.videoLanguage(0) }),
	"video_language_iso_639_1":                   str(func(s *State) string { return s.videoLanguage(1) }),
	"video_language_iso_639_2":                   str(func(s *State) string { return s.videoLanguage(2) }),
	"video_width":                                str((*State).videoWidth),
	"title":                                      str((*State).title),
	tokens.TitleClean:                            str((*State).titleClean),
	"title_exact":                                str((*State).rawTitle),
	"imdb_aka":                                   str(func(s *State) string { return s.imdbAKA(false, false) }),
	"imdb_aka_fallback_title":                    str(func(s *State) string { return s.imdbAKA(true, false) }),
	tokens.IMDbAKAFallbackTitleClean:             str(func(s *State) string { return s.imdbAKA(true, true) }),
	"original_language":                          str(func(s *State) string { return s.originalLanguage(0) }),
	"original_language_iso_639_1":                str(func(s *State) string { return s.originalLanguage(1) }),
	"original_language_iso_639_2":                str(func(s *State) string { return s.originalLanguage(2) }),
	"imdb_id":                                    str(func(s *State) string { return s.ctx.search().IMDbID }),
	"tmdb_id":                                    str(func(s *State) string { return s.ctx.search().TMDbID }),
	"tvdb_id":                                    str(func(s *State) string { return s.ctx.search().TVDbID }),
	"mal_id":                                     str(func(s *State) string { return s.ctx.search().MALID }),
	"original_filename":                          str((*State).originalFilename),
	"release_group":                              str((*State).releaseGroup),
	"releasers_name":                             str((*State).releasersName),
	"release_date":                               str((*State).releaseDate),
	"release_year":                               str((*State).releaseYear),
	"release_year_parentheses": str(func(s *State) string {
		if y := s.releaseYear(); y != "" {
			return "(" + y + ")"
		}
		return ""
	}),
	tokens.ReRelease:         str((*State).reRelease),
	"resolution":             str((*State).commercialResolution),
	tokens.Remux:             str((*State).remux),
	tokens.Source:            str(func(s *State) string { return s.quality().String() }),
	"air_date":               str((*State).airDate),
	"season_number":          str((*State).seasonNumber),
	"episode_number":         str((*State).episodeNumber),
	"episode_air_date":       str((*State).episodeAirDate),
	"episode_title":          str((*State).episodeTitle),
	tokens.EpisodeTitleClean: str((*State).episodeTitleClean),
	"episode_title_exact":    str((*State).episodeTitleExact),

	"chapter_type":               str((*State).chapterType),
	"format_profile":             str((*State).formatProfile),
	"media_file":                 str(func(s *State) string { return s.ctx.primaryName() }),
	"media_file_no_ext":          str(func(s *State) string { return s.ctx.primaryStem() }),
	"source_file":                str((*State).sourceName),
	"source_file_no_ext":         str(func(s *State) string { return stem(s.sourceName()) }),
	"media_info":                 str((*State).mediaInfo),
	"media_info_short":           str((*State).mediaInfoShort),
	"video_bit_rate":             str(func(s *State) string { return s.videoBitRate(false) }),
	"video_bit_rate_num_only":    str(func(s *State) string { return s.videoBitRate(true) }),
	"release_notes":              str(func(s *State) string { return s.ctx.ReleaseNotes }),
	"repack":                     str(func(s *State) string { return s.reReleaseFlag("repack", "REPACK", s.ctx.RepackN) }),
	"repack_n":                   str(func(s *State) string { return s.reReleaseNumbered(repackPattern, s.ctx.RepackN) }),
	"repack_reason":              str(func(s *State) string { return s.ctx.RepackReason }),
	"proper":                     str(func(s *State) string { return s.reReleaseFlag("proper", "PROPER", s.ctx.ProperN) }),
	"proper_n":                   str(func(s *State) string { return s.reReleaseNumbered(properPattern, s.ctx.ProperN) }),
	"proper_reason":              str(func(s *State) string { return s.ctx.ProperReason }),
	"screen_shots":               str((*State).screenshots),
	"screen_shots_comparison":    str((*State).screenshotsComparison),
	"screen_shots_even_obj":      func(s *State) tokens.Value { return s.screenshotObjects(true) },
	"screen_shots_odd_obj":       func(s *State) tokens.Value { return s.screenshotObjects(false) },
	"screen_shots_even_str":      func(s *State) tokens.Value { return s.screenshotStrings(true) },
	"screen_shots_odd_str":       func(s *State) tokens.Value { return s.screenshotStrings(false) },
	"file_size_bytes":            str((*State).fileSizeBytes),
	"file_size":                  str((*State).fileSize),
	"duration_milliseconds":      str((*State).durationMS),
	"duration_short":             str(func(s *State) string { return s.duration(0) }),
	"duration_long":              str(func(s *State) string { return s.duration(1) }),
	"duration_detailed":          str(func(s *State) string { return s.duration(3) }),
	"aspect_ratio":               str((*State).aspectRatio),
	"video_frame_rate":           str((*State).frameRate),
	"subtitle_s":                 str((*State).subtitles),
	"episode_metadata":           str((*State).episodeMetadata),
	"episode_mediainfo":          str((*State).episodeMediaInfo),
	"episode_metadata_mediainfo": str((*State).episodeMetadataMediaInfo),
	"total_seasons":              str((*State).totalSeasons),
	"total_episodes":             str((*State).totalEpisodes),
	"genres":                     str((*State).genres),
	"program_info":               str((*State).programInfo),
	"shared_with":                str((*State).sharedWith),
	"shared_with_bbcode":         str((*State).sharedWithBBCode),
	"shared_with_html":           str((*State).sharedWithHTML),
}
