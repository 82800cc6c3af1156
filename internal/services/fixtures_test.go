package services

const offlineBody = `{
  "stream": null,
  "_links": {
    "self": "https://api.twitch.tv/kraken/streams/freecodecamp",
    "channel": "https://api.twitch.tv/kraken/channels/freecodecamp"
  }
}`

const notFoundBody = `{
  "error": "Not Found",
  "message": "Channel 'suqkjfhkqjfh' does not exist",
  "status": 404
}`

const onlineBody = `{
  "stream": {
    "_id": 21639364272,
    "game": "Hearthstone: Heroes of Warcraft",
    "viewers": 1333,
    "created_at": "2016-06-02T06:58:53Z",
    "video_height": 864,
    "average_fps": 30,
    "delay": 0,
    "is_playlist": false,
    "channel": {
      "mature": false,
      "status": "[coL] Superjj - The miracle master",
      "broadcaster_language": "en",
      "display_name": "superjj102",
      "game": "Hearthstone: Heroes of Warcraft",
      "language": "de",
      "_id": 58352686,
      "name": "superjj102",
      "delay": null,
      "logo": "https://static-cdn.jtvnw.net/jtv_user_pictures/superjj102-profile_image-a465d147fb62219c-300x300.jpeg",
      "banner": null,
      "partner": true,
      "url": "https://www.twitch.tv/superjj102",
      "views": 1635891,
      "followers": 33864
    }
  }
}`
